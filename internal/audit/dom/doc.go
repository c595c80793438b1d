// Package dom turns raw markup into a traversable document tree.
//
// Parsing is browser-grade permissive: unclosed tags and unknown elements
// degrade into best-effort nodes rather than errors. The tree is exposed in
// two query forms over a single parse:
//   - goquery: jQuery-like CSS selectors
//   - htmlquery: XPath queries in document order
//
// Input is charset-normalized with chardet before parsing and bounded by
// MaxMarkupSize to prevent memory exhaustion.
package dom
