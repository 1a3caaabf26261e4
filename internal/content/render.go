package content

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/jasonroy7dct/site/internal/logging"
)

const noContent = "(No content)"

// Render converts post HTML to markdown for the terminal.
func Render(html string) string {
	if strings.TrimSpace(html) == "" {
		return noContent
	}
	out, err := md.ConvertString(html)
	if err != nil {
		logging.Warn("render post failed", "error", err)
		return noContent
	}
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return noContent
	}
	return out
}

// Preview cuts text to n characters, adding "..." when it was longer.
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
