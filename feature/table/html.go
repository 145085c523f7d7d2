package table

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// findMeta scans an HTML document for <meta name="<name>" content="..."> and
// returns the content of the first match. ok is false when no such tag carries a
// content attribute.
func findMeta(r io.Reader, name string) (content string, ok bool, err error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return "", false, nil
			}
			return "", false, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var matched, hasContent bool
			for _, attr := range tok.Attr {
				switch attr.Key {
				case "name":
					matched = strings.EqualFold(strings.TrimSpace(attr.Val), name)
				case "content":
					content, hasContent = strings.TrimSpace(attr.Val), true
				}
			}
			if matched && hasContent {
				return content, true, nil
			}
		}
	}
}
