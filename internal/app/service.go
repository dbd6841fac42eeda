package app

import (
	"changes2aptly/internal/adapters"
	"changes2aptly/internal/core"
	"changes2aptly/internal/ports"
)

type Service struct {
	Scanner      ports.ChangesScannerPort
	Manifests    ports.ManifestReaderPort
	Metadata     ports.MetadataReaderPort
	RecordWriter ports.RecordWriterPort
	OutputFile   ports.RecordFilePort
	Composer     core.RecordComposer
}

func NewService() Service {
	return Service{
		Scanner:      adapters.NewChangesScanAdapter(),
		Manifests:    adapters.NewChangesFileAdapter(),
		Metadata:     adapters.NewControlFileAdapter(),
		RecordWriter: adapters.NewRecordWriterAdapter(),
		OutputFile:   adapters.NewOutputFileAdapter(),
		Composer:     core.NewRecordComposer(),
	}
}
