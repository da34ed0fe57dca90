package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText extracts the visible text of an HTML fragment with whitespace
// collapsed, for use as archive search text. Script and style bodies are
// dropped. Total: unparseable input yields an empty string.
func PlainText(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
