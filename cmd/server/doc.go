// Command server runs the pagelens HTML audit service.
//
// Configuration comes from the environment (see internal/infrastructure/
// config); the -port and -policy flags override it for local runs.
package main
