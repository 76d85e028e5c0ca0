// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The workflows read script directories and write exported scripts through
// FileSystemProvider, so they can be tested against an in-memory tree.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Missing paths are reported with errors matching fs.ErrNotExist in both
// implementations.
package filesystem
