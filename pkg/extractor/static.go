package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"html-extract-go/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Static fetches the page over plain HTTP and queries the served DOM.
// Scripts are not executed; browser and driver paths are not used.
type Static struct {
	client    *http.Client
	userAgent string
}

// NewStatic creates the HTTP-only extractor.
func NewStatic(opts Options) *Static {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Static{client: client, userAgent: ua}
}

func (s *Static) Name() string { return BackendStatic }

func (s *Static) Extract(ctx context.Context, req models.ExtractionRequest, progress ProgressFunc) (string, error) {
	selector, err := CSSSelector(req.Strategy, req.Value)
	if err != nil {
		return "", newExtractionError(StageLocate, err)
	}

	progress.report(StageNavigate, "Fetching "+req.TargetURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.TargetURL, nil)
	if err != nil {
		return "", newExtractionError(StageNavigate, fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", contextError(StageNavigate, ctx.Err())
		}
		return "", newExtractionError(StageNavigate, fmt.Errorf("failed to fetch %s: %w", req.TargetURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", newExtractionError(StageNavigate, fmt.Errorf("failed to fetch %s: status %d", req.TargetURL, resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", newExtractionError(StageNavigate, fmt.Errorf("failed to parse page: %w", err))
	}

	progress.report(StageLocate, fmt.Sprintf("Looking for %s %q", req.Strategy, req.Value))
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", newNotFoundError(req.Strategy, req.Value, nil)
	}

	progress.report(StageRead, "Reading outer HTML")
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", newExtractionError(StageRead, err)
	}

	progress.report(StageComplete, "Done")
	return markup, nil
}
