package core

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"changes2aptly/internal/types"
)

// RecordOverlay holds the computed fields laid over the control metadata.
type RecordOverlay struct {
	FilesHash string
	MD5Sum    string
	SHA1      string
	SHA256    string
	ShortKey  string
	Key       string
}

type RecordComposer struct{}

func NewRecordComposer() RecordComposer {
	return RecordComposer{}
}

// Synthesize fingerprints file, derives its keys from the identity fields
// of metadata and composes the final record.
func (c RecordComposer) Synthesize(ctx context.Context, file types.PackageFile, metadata types.Paragraph) (types.Record, error) {
	architecture, err := requiredField(metadata, types.FieldArchitecture, file.Name)
	if err != nil {
		return types.Record{}, err
	}
	packageName, err := requiredField(metadata, types.FieldPackage, file.Name)
	if err != nil {
		return types.Record{}, err
	}
	version, err := requiredField(metadata, types.FieldVersion, file.Name)
	if err != nil {
		return types.Record{}, err
	}
	hasher := NewFilesHasher()
	if err := hasher.Add(file); err != nil {
		return types.Record{}, err
	}
	filesHash := hasher.Hex()
	shortKey, key := DeriveKeys(ctx, architecture, packageName, version, filesHash)
	return c.Compose(ctx, metadata, RecordOverlay{
		FilesHash: filesHash,
		MD5Sum:    file.MD5,
		SHA1:      file.SHA1,
		SHA256:    file.SHA256,
		ShortKey:  shortKey,
		Key:       key,
	}), nil
}

// Compose copies every metadata field in source order and then sets the
// overlay fields, replacing metadata fields of the same name.
func (c RecordComposer) Compose(ctx context.Context, metadata types.Paragraph, overlay RecordOverlay) types.Record {
	record := types.NewRecord()
	for _, field := range metadata.Fields() {
		value, _ := metadata.Get(field)
		record.Set(field, value)
	}
	record.Set(types.FieldFilesHash, overlay.FilesHash)
	record.Set(types.FieldMD5Sum, overlay.MD5Sum)
	record.Set(types.FieldSHA1, overlay.SHA1)
	record.Set(types.FieldSHA256, overlay.SHA256)
	record.Set(types.FieldSHA512, DeriveSHA512(overlay.SHA256))
	record.Set(types.FieldShortKey, overlay.ShortKey)
	record.Set(types.FieldKey, overlay.Key)
	log.Ctx(ctx).Debug().Str("key", overlay.Key).Int("fields", record.Len()).Msg("record composed")
	return record
}

// DeriveSHA512 returns the SHA-512 of the sha256 hex string itself, not of
// the package contents. Downstream records depend on this exact value.
func DeriveSHA512(sha256Hex string) string {
	sum := sha512.Sum512([]byte(sha256Hex))
	return hex.EncodeToString(sum[:])
}

func requiredField(metadata types.Paragraph, field string, fileName string) (string, error) {
	value, ok := metadata.Get(field)
	if !ok || strings.TrimSpace(value) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("control metadata missing %s", field)).
			WithCause(fmt.Errorf("file=%s", fileName))
	}
	return value, nil
}
