// Package logging provides concrete implementations of the dbmeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes timestamped, level-tagged messages to stderr
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
