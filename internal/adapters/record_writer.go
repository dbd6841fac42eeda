package adapters

import (
	"encoding/json"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"changes2aptly/internal/ports"
	"changes2aptly/internal/types"
)

type RecordWriterAdapter struct{}

func NewRecordWriterAdapter() RecordWriterAdapter {
	return RecordWriterAdapter{}
}

// Write emits records as a JSON array indented by two spaces, or as a YAML
// sequence. Both end with a newline.
func (a RecordWriterAdapter) Write(w io.Writer, records []types.Record, format types.OutputFormat) error {
	if records == nil {
		records = []types.Record{}
	}
	switch format {
	case types.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return writeFailed(err)
		}
		if err := enc.Close(); err != nil {
			return writeFailed(err)
		}
		return nil
	case types.OutputFormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return writeFailed(err)
		}
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported output format: " + string(format))
	}
}

func writeFailed(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write records").
		WithCause(err)
}

var _ ports.RecordWriterPort = RecordWriterAdapter{}
