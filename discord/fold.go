package discord

import (
	"strings"

	"golang.org/x/text/width"
)

// foldCommand maps full-width characters typed with a Japanese IME, such
// as "２Ｄ６＞＝５", to their ASCII forms.
func foldCommand(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}
