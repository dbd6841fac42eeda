package ports

import (
	"io"

	"changes2aptly/internal/types"
)

type ManifestReaderPort interface {
	ReadManifest(path string) (types.Manifest, error)
}

type MetadataReaderPort interface {
	ReadMetadata(path string) (types.Paragraph, error)
}

type RecordWriterPort interface {
	Write(w io.Writer, records []types.Record, format types.OutputFormat) error
}
