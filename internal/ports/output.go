package ports

import "changes2aptly/internal/types"

type RecordFilePort interface {
	WriteRecords(path string, records []types.Record, format types.OutputFormat) error
}
