// Package http exposes the audit engine over a JSON API.
//
// Endpoints:
//   - POST /audit: audit pasted markup
//   - POST /audit/url: fetch a page and audit it
//   - POST /audit/batch: audit files under a directory root
//   - GET /audit/:id/export: render a stored report as HTML or text
//   - GET /health: liveness probe
//
// Report bodies are marshaled with sonic; recent reports are retained in a
// bounded in-memory store for export.
package http
