package extractor

import (
	"fmt"
	"strings"

	"html-extract-go/pkg/models"
)

var attrValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// CSSSelector builds the CSS selector for a lookup. Class lookups match a
// single whitespace-separated token of the class attribute; id lookups match
// the whole id attribute.
func CSSSelector(strategy models.LookupStrategy, value string) (string, error) {
	escaped := attrValueEscaper.Replace(value)
	switch strategy {
	case models.ByClassName:
		return `[class~="` + escaped + `"]`, nil
	case models.ByID:
		return `[id="` + escaped + `"]`, nil
	}
	return "", fmt.Errorf("unsupported lookup strategy %q", strategy)
}
