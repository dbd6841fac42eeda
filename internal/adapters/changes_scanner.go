package adapters

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/ports"
)

const changesSuffix = ".changes"

type ChangesScanAdapter struct{}

func NewChangesScanAdapter() ChangesScanAdapter {
	return ChangesScanAdapter{}
}

// ExpandChanges replaces every directory in paths with the changes files
// below it, in lexical order. Other paths are kept in place so that the
// manifest reader reports missing files.
func (a ChangesScanAdapter) ExpandChanges(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}
		found, err := a.FindChanges(path)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("no changes files found in " + path)
		}
		expanded = append(expanded, found...)
	}
	return expanded, nil
}

func (a ChangesScanAdapter) FindChanges(root string) ([]string, error) {
	var paths []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scan root is empty")
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipScanDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), changesSuffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan for changes files").
			WithCause(err)
	}
	return paths, nil
}

// VCS metadata and OBS/quilt working state.
func shouldSkipScanDir(name string) bool {
	switch name {
	case ".git", ".svn", ".osc", ".pc":
		return true
	default:
		return false
	}
}

var _ ports.ChangesScannerPort = ChangesScanAdapter{}
