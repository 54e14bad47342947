package sanitize

import (
	"strings"

	"campusevents/internal/domain"
)

type sanitizer struct{}

// New returns the default Sanitizer: trim surrounding whitespace, drop escape
// backslashes, then HTML-escape markup characters. Quotes are left alone so
// that downstream validation can still accept them; all sanitized values are
// only ever used as bound query parameters, never as markup.
func New() domain.Sanitizer {
	return sanitizer{}
}

var (
	deescaper = strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`)
	escaper   = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
)

func (sanitizer) Sanitize(text string) string {
	return escaper.Replace(deescaper.Replace(strings.TrimSpace(text)))
}
