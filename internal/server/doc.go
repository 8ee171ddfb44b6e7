// Package server wires and runs the application's HTTP server.
//
// It provides startup, signal handling, and graceful shutdown of the
// transport together with the background workers that must drain before
// the process exits.
package server
