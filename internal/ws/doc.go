// Package ws streams audit progress over WebSocket.
//
// A client sends an audit request and receives one message per completed
// rule category followed by the full report, letting the UI paint scores
// incrementally instead of waiting for the whole run.
package ws
