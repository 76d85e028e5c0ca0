package dbmeta

// FileScanner discovers script files.
type FileScanner interface {
	// ListScripts returns the *.sql files directly inside dir, sorted by name.
	// A missing directory or one without scripts yields ErrScriptsNotFound.
	ListScripts(dir string) ([]ScriptFile, error)
}
