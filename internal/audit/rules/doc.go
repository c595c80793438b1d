// Package rules implements the audit checks as a registry of independent
// rule objects grouped into four fixed categories.
//
// Categories, in report order:
//   - Semantic Structure: landmark usage, heading hierarchy, id uniqueness
//   - Accessibility Basics: alt text, form labels, document language
//   - UI & Markup Hygiene: inline styles, nesting depth, wrapper soup
//   - Document Completeness: title, viewport, Open Graph, deprecated tags
//
// Every rule implements the same Inspect(doc, raw) contract and runs
// unconditionally; rules never short-circuit each other. Adding or removing
// a check touches only its own rule and the registry table.
package rules
