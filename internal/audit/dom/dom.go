package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxMarkupSize limits input to 10MB to prevent memory exhaustion.
const MaxMarkupSize = 10 * 1024 * 1024

// ErrTooLarge is returned when the input exceeds MaxMarkupSize.
var ErrTooLarge = fmt.Errorf("markup exceeds maximum size of %d bytes", MaxMarkupSize)

// Document wraps one parsed tree behind both query interfaces.
type Document struct {
	doc  *goquery.Document
	root *html.Node
}

// Parse builds a Document from raw markup. The parser never rejects
// malformed markup; only oversized input fails.
func Parse(raw string) (*Document, error) {
	if len(raw) > MaxMarkupSize {
		return nil, ErrTooLarge
	}

	root, err := html.Parse(decodeReader(raw))
	if err != nil {
		// x/net/html only fails on reader errors, not bad markup.
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	if root == nil {
		return nil, errors.New("parser produced no tree")
	}

	return &Document{
		doc:  goquery.NewDocumentFromNode(root),
		root: root,
	}, nil
}

// decodeReader wraps the input in a charset-normalizing reader, falling back
// to the raw bytes when detection or conversion is unavailable.
func decodeReader(raw string) *strings.Reader {
	data := []byte(raw)
	detected := DetectCharset(data)
	if detected == "utf-8" {
		return strings.NewReader(raw)
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), detected)
	if err != nil {
		return strings.NewReader(raw)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(utf8Reader); err != nil {
		return strings.NewReader(raw)
	}
	return strings.NewReader(buf.String())
}

// DetectCharset detects the charset of raw bytes, defaulting to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// Find queries the tree with a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// XPath queries the tree with an XPath expression in document order.
func (d *Document) XPath(expr string) []*html.Node {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil
	}
	return nodes
}

// XPathOne returns the first XPath match, or nil.
func (d *Document) XPathOne(expr string) *html.Node {
	node, err := htmlquery.Query(d.root, expr)
	if err != nil {
		return nil
	}
	return node
}

// Root returns the parsed tree root.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element node, or nil when the document has none.
func (d *Document) Body() *html.Node {
	return d.XPathOne("//body")
}

// Text extracts the trimmed text content of a node.
func Text(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// Attr returns the value of an attribute on a node, and whether it exists.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ElementChildren returns the element-node children of n, skipping text and
// comment nodes.
func ElementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}
