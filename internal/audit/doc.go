// Package audit is the engine that turns raw markup into a scored report.
//
// The engine validates input, builds one document tree, runs the four rule
// categories in fixed order, and assembles the Report. Each run is
// deterministic apart from the report date and id; the engine holds no
// mutable state between runs, so one Engine may serve concurrent callers.
//
// Collaborating packages:
//   - dom: permissive tree building (goquery + htmlquery)
//   - rules: the rule registry and its four categories
//   - locate: heuristic source positions for findings
//   - score: severity-weighted category and overall scoring
package audit
