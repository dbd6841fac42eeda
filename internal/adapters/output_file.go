package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/ports"
	"changes2aptly/internal/types"
)

// OutputFileAdapter writes the record list to a file. The file is replaced
// atomically so a failed run never leaves a truncated record list behind.
type OutputFileAdapter struct {
	Writer ports.RecordWriterPort
}

func NewOutputFileAdapter() OutputFileAdapter {
	return OutputFileAdapter{Writer: NewRecordWriterAdapter()}
}

func (a OutputFileAdapter) WriteRecords(path string, records []types.Record, format types.OutputFormat) error {
	dir, err := a.ensureDir(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output file").
			WithCause(err)
	}
	defer os.Remove(tmp.Name())

	if err := a.Writer.Write(tmp, records, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return writeFailed(err)
	}
	if err := tmp.Close(); err != nil {
		return writeFailed(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace output file").
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensureDir(path string) (string, error) {
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return dir, nil
}

var _ ports.RecordFilePort = OutputFileAdapter{}
