package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"changes2aptly/internal/core"
	"changes2aptly/internal/shared"
	"changes2aptly/internal/types"
)

// Generate builds the records for every binary package in the given changes
// files, expanding directories first, and writes them in one go. Nothing is
// written if any package fails.
func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if len(req.ChangesPaths) == 0 {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one changes file is required")
	}
	if req.Output == nil && strings.TrimSpace(req.OutputPath) == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output writer is required")
	}
	format, err := types.ParseOutputFormat(req.Format)
	if err != nil {
		return GenerateResult{}, err
	}
	changesPaths, err := s.Scanner.ExpandChanges(req.ChangesPaths)
	if err != nil {
		return GenerateResult{}, err
	}
	records, err := s.BuildRecords(ctx, changesPaths)
	if err != nil {
		return GenerateResult{}, err
	}
	if path := strings.TrimSpace(req.OutputPath); path != "" {
		err = s.OutputFile.WriteRecords(path, records, format)
	} else {
		err = s.RecordWriter.Write(req.Output, records, format)
	}
	if err != nil {
		return GenerateResult{}, err
	}
	return GenerateResult{
		Manifests: len(changesPaths),
		Records:   len(records),
	}, nil
}

// BuildRecords returns one record per .deb, in argument order and then in
// the order each changes file lists its files.
func (s Service) BuildRecords(ctx context.Context, changesPaths []string) ([]types.Record, error) {
	records := []types.Record{}
	for _, raw := range changesPaths {
		path := strings.TrimSpace(raw)
		if path == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("changes file path is empty")
		}
		manifest, err := s.Manifests.ReadManifest(path)
		if err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("changes", path).Int("files", len(manifest.Files)).Msg("changes file read")
		for _, entry := range manifest.Files {
			if !core.IsBinaryPackage(entry.Name) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			record, err := s.buildRecord(ctx, manifest, entry)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (s Service) buildRecord(ctx context.Context, manifest types.Manifest, entry types.ArtifactEntry) (types.Record, error) {
	sha1, ok := manifest.SHA1For(entry.Name)
	if !ok {
		return types.Record{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("missing Checksums-Sha1 entry").
			WithCause(shared.FileError(entry.Name, manifest.Path))
	}
	sha256, ok := manifest.SHA256For(entry.Name)
	if !ok {
		return types.Record{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("missing Checksums-Sha256 entry").
			WithCause(shared.FileError(entry.Name, manifest.Path))
	}
	metadataPath := filepath.Join(filepath.Dir(manifest.Path), core.MetadataFileName(entry.Name))
	metadata, err := s.Metadata.ReadMetadata(metadataPath)
	if err != nil {
		return types.Record{}, err
	}
	record, err := s.Composer.Synthesize(ctx, types.PackageFile{
		Name:   entry.Name,
		Size:   entry.Size,
		MD5:    entry.MD5Sum,
		SHA1:   sha1,
		SHA256: sha256,
	}, metadata)
	if err != nil {
		return types.Record{}, err
	}
	key, _ := record.Get(types.FieldKey)
	log.Ctx(ctx).Debug().
		Str("file", entry.Name).
		Str("size", humanize.Bytes(entry.Size)).
		Str("key", key).
		Msg("package record built")
	return record, nil
}
