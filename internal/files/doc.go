// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Script discovery in a scripts directory
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/dbmeta/internal/files/filesystem"
//	    "github.com/vvka-141/dbmeta/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner(filesystem.NewOSFileSystem())
//	scripts, err := fileScanner.ListScripts("./scripts")
package files
