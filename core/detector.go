package orchestration

import (
	"context"
	"strings"
)

type languageDetector struct {
	gateway *remoteGateway
}

// detect resolves the language of text to a short lowercase code.
func (d languageDetector) detect(ctx context.Context, text string) string {
	return normalizeLanguageCode(d.gateway.detectLanguage(ctx, text))
}

// normalizeLanguageCode accepts answers like "HI", "'pa'", "en-US" or "fr."
// and reduces them to the primary subtag. Anything that is not a 2 or 3
// letter code resolves to FallbackLanguage.
func normalizeLanguageCode(raw string) string {
	code := strings.ToLower(strings.TrimSpace(raw))
	code = strings.Trim(code, "\"'`.,;:!?()[]{} \t\r\n")
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}

	if len(code) < 2 || len(code) > 3 {
		return FallbackLanguage
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return FallbackLanguage
		}
	}
	return code
}
