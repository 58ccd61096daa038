// Package log provides the logging abstraction used across risclient.
//
// The library never logs through a process-wide singleton; every component
// receives a Logger explicitly. A zerolog adapter is provided for normal
// use and a no-op logger for embedding and tests.
//
// # Usage
//
// Console logging:
//
//	logger := log.NewConsole(zerolog.InfoLevel)
//
// Silent (the default everywhere a logger is optional):
//
//	logger := log.NewNoop()
//
// Implement the Logger interface to plug in an existing logging setup.
package log
