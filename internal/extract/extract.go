package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Document is the plain text recovered from one source file.
type Document struct {
	Title string
	Text  string
	Pages int
}

// FromHTML extracts readable text from a saved certificate page. Script and
// style content is dropped and block elements start on their own line so
// line-anchored patterns still see one field per line.
func FromHTML(input []byte) Document {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return Document{}
	}

	title := ""
	if head := findFirst(node, "head"); head != nil {
		if t := findFirst(head, "title"); t != nil && t.FirstChild != nil {
			title = strings.TrimSpace(t.FirstChild.Data)
		}
	}
	root := findFirst(node, "body")
	if root == nil {
		root = node
	}
	var b strings.Builder
	collectText(&b, root)
	return Document{Title: title, Text: tidyLines(b.String()), Pages: 1}
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

var spaceReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\u00a0", " ")

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "template":
			return
		case "br", "hr", "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		case "td", "th":
			b.WriteString(" ")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(spaceReplacer.Replace(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}

// tidyLines trims every line, collapses inner space runs and drops blank
// lines. Form feeds are kept as page separators.
func tidyLines(s string) string {
	pages := strings.Split(s, "\f")
	for i, page := range pages {
		lines := strings.Split(page, "\n")
		out := lines[:0]
		for _, line := range lines {
			line = strings.Join(strings.Fields(line), " ")
			if line != "" {
				out = append(out, line)
			}
		}
		pages[i] = strings.Join(out, "\n")
	}
	return strings.Join(pages, "\f")
}
