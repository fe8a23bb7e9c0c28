package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// MaxContent caps the imported text length in bytes
const MaxContent = 10 * 1024

// ErrNoContent is returned when a document has no readable text
var ErrNoContent = errors.New("no text content found")

// Document is the readable part of an HTML page
type Document struct {
	Title   string
	Content string
}

// Extract parses HTML from r and returns its title and readable text
func Extract(r io.Reader) (Document, error) {
	// Read with size limit (5MB)
	doc, err := html.Parse(io.LimitReader(r, 5*1024*1024))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	out := Document{Title: findTitle(doc)}
	out.Content = extractText(doc)
	if out.Content == "" {
		return Document{}, ErrNoContent
	}
	return out, nil
}

// findTitle prefers <title>, then the first <h1>
func findTitle(doc *html.Node) string {
	if n := findElement(doc, "title"); n != nil {
		if t := collapse(textOf(n, false)); t != "" {
			return t
		}
	}
	if n := findElement(doc, "h1"); n != nil {
		return collapse(textOf(n, false))
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// ignored elements never contribute text to a note
var ignored = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true,
	"iframe": true, "nav": true, "header": true, "footer": true, "aside": true,
}

// breaks end a line of note content
var breaks = map[string]bool{
	"p": true, "div": true, "li": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// textOf collects the text under n. With body set, ignored elements are
// dropped and a newline follows each line-breaking element.
func textOf(n *html.Node, body bool) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case n.Type == html.ElementNode && body && ignored[n.Data]:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if body && n.Type == html.ElementNode && breaks[n.Data] {
			sb.WriteByte('\n')
		}
	}
	walk(n)
	return sb.String()
}

// extractText returns the readable text of the document, one block per line,
// capped at MaxContent bytes
func extractText(doc *html.Node) string {
	var lines []string
	for _, line := range strings.Split(textOf(doc, true), "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	result := strings.Join(lines, "\n")

	if len(result) > MaxContent {
		result = truncate(result, MaxContent) + "..."
	}
	return result
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	for n > 0 && n < len(s) && !utf8Start(s[n]) {
		n--
	}
	return s[:n]
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
