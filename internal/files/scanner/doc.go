// Package scanner discovers the script files of a scripts directory.
//
// Only *.sql files directly inside the directory are considered; the
// extension match is case-insensitive and subdirectories are ignored.
// Files are returned in lexicographic order of their names, which is the
// order they are executed in.
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
