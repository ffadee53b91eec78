package annotate

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// html.Render escapes quotes in text nodes, which changes every annotated paragraph that
// quotes something. Text is written with only the characters which must be escaped there.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {}, "input": {},
	"keygen": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

var rawTextElements = map[string]struct{}{
	"iframe": {}, "noembed": {}, "noframes": {}, "noscript": {}, "plaintext": {},
	"script": {}, "style": {}, "xmp": {},
}

func writeNode(buf *bytes.Buffer, n *html.Node) error {
	switch n.Type {
	case html.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if err := writeNode(buf, child); err != nil {
				return err
			}
		}
		return nil
	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode {
			if _, ok := rawTextElements[n.Parent.Data]; ok {
				buf.WriteString(n.Data)
				return nil
			}
		}
		buf.WriteString(textEscaper.Replace(n.Data))
		return nil
	case html.ElementNode:
		return writeElement(buf, n)
	default:
		if err := html.Render(buf, n); err != nil {
			return fmt.Errorf("html.Render > %w", err)
		}
		return nil
	}
}

func writeElement(buf *bytes.Buffer, n *html.Node) error {
	buf.WriteByte('<')
	buf.WriteString(n.Data)
	for _, attr := range n.Attr {
		buf.WriteByte(' ')
		if attr.Namespace != "" {
			buf.WriteString(attr.Namespace)
			buf.WriteByte(':')
		}
		buf.WriteString(attr.Key)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(attr.Val))
		buf.WriteByte('"')
	}
	if _, ok := voidElements[n.Data]; ok {
		buf.WriteString("/>")
		return nil
	}
	buf.WriteByte('>')

	// The parser drops a newline right after these start tags.
	switch n.Data {
	case "pre", "listing", "textarea":
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			buf.WriteByte('\n')
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := writeNode(buf, child); err != nil {
			return err
		}
	}
	buf.WriteString("</")
	buf.WriteString(n.Data)
	buf.WriteByte('>')
	return nil
}
