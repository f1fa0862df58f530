package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"html-extract-go/pkg/extractor"
	"html-extract-go/pkg/models"
)

// BackendRemote names the backend that delegates to an API server.
const BackendRemote = "remote"

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.doGetRequest(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("server unhealthy: %q", status.Status)
	}
	return nil
}

// ExtractResult asks the server to run one extraction.
func (c *Client) ExtractResult(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error) {
	var resp struct {
		Success bool                     `json:"success"`
		Data    *models.ExtractionResult `json:"data"`
		Error   string                   `json:"error"`
	}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/v1/extract", req, &resp); err != nil {
		// The server already phrased extraction failures; pass them on unchanged.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
			return nil, errors.New(apiErr.Message)
		}
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("server returned no result: %s", resp.Error)
	}
	return resp.Data, nil
}

// Name implements extractor.Extractor.
func (c *Client) Name() string { return BackendRemote }

// Extract implements extractor.Extractor by delegating to the server.
func (c *Client) Extract(ctx context.Context, req models.ExtractionRequest, progress extractor.ProgressFunc) (string, error) {
	if progress != nil {
		progress(extractor.StageLaunch, "Sending request to "+c.baseURL)
	}
	res, err := c.ExtractResult(ctx, req)
	if err != nil {
		return "", err
	}
	if progress != nil {
		progress(extractor.StageComplete, fmt.Sprintf("Server finished with %s", res.Backend))
	}
	return res.Markup, nil
}
