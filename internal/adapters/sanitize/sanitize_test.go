package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"drops escape backslashes", `it\'s a \"test\"`, `it's a "test"`},
		{"collapses double backslash", `a\\b`, `a\b`},
		{"escapes markup", "<b>bold</b>", "&lt;b&gt;bold&lt;/b&gt;"},
		{"escapes ampersand", "rock & roll", "rock &amp; roll"},
		{"leaves quotes alone", `say "hi"`, `say "hi"`},
		{"empty input", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}
