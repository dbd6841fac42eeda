package ports

// ChangesScannerPort turns command line paths into changes files. Directories
// are searched recursively; anything else is passed through as given.
type ChangesScannerPort interface {
	ExpandChanges(paths []string) ([]string, error)
}
