package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/ports"
	"changes2aptly/internal/types"
)

const (
	fieldFiles           = "Files"
	fieldChecksumsSha1   = "Checksums-Sha1"
	fieldChecksumsSha256 = "Checksums-Sha256"
)

// ChangesFileAdapter reads Debian .changes upload manifests.
type ChangesFileAdapter struct{}

func NewChangesFileAdapter() ChangesFileAdapter {
	return ChangesFileAdapter{}
}

func (a ChangesFileAdapter) ReadManifest(path string) (types.Manifest, error) {
	paragraph, err := readControlFile(path, "changes file")
	if err != nil {
		return types.Manifest{}, err
	}
	return manifestFromParagraph(path, paragraph)
}

func manifestFromParagraph(path string, paragraph types.Paragraph) (types.Manifest, error) {
	manifest := types.Manifest{Path: path, Fields: paragraph}
	files, ok := paragraph.Get(fieldFiles)
	if !ok {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("changes file has no Files field").
			WithCause(fmt.Errorf("path=%s", path))
	}
	for _, line := range fieldLines(files) {
		entry, err := parseFilesLine(line)
		if err != nil {
			return types.Manifest{}, malformedChangesLine(path, fieldFiles, line, err)
		}
		manifest.Files = append(manifest.Files, entry)
	}
	sha1, err := parseChecksumField(path, paragraph, fieldChecksumsSha1)
	if err != nil {
		return types.Manifest{}, err
	}
	manifest.ChecksumsSha1 = sha1
	sha256, err := parseChecksumField(path, paragraph, fieldChecksumsSha256)
	if err != nil {
		return types.Manifest{}, err
	}
	manifest.ChecksumsSha256 = sha256
	return manifest, nil
}

// parseChecksumField parses an optional Checksums-* field. A missing field
// yields no entries; lookups for files it should cover fail later.
func parseChecksumField(path string, paragraph types.Paragraph, field string) ([]types.ChecksumEntry, error) {
	raw, ok := paragraph.Get(field)
	if !ok {
		return nil, nil
	}
	var entries []types.ChecksumEntry
	for _, line := range fieldLines(raw) {
		entry, err := parseChecksumLine(line)
		if err != nil {
			return nil, malformedChangesLine(path, field, line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseFilesLine parses "md5 size section priority name".
func parseFilesLine(line string) (types.ArtifactEntry, error) {
	parts := strings.Fields(line)
	if len(parts) != 5 {
		return types.ArtifactEntry{}, fmt.Errorf("expected 5 columns, got %d", len(parts))
	}
	size, err := parseSize(parts[1])
	if err != nil {
		return types.ArtifactEntry{}, err
	}
	return types.ArtifactEntry{
		MD5Sum:   parts[0],
		Size:     size,
		Section:  parts[2],
		Priority: parts[3],
		Name:     parts[4],
	}, nil
}

// parseChecksumLine parses "digest size name".
func parseChecksumLine(line string) (types.ChecksumEntry, error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return types.ChecksumEntry{}, fmt.Errorf("expected 3 columns, got %d", len(parts))
	}
	size, err := parseSize(parts[1])
	if err != nil {
		return types.ChecksumEntry{}, err
	}
	return types.ChecksumEntry{
		Digest: parts[0],
		Size:   size,
		Name:   parts[2],
	}, nil
}

func parseSize(value string) (uint64, error) {
	size, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	return size, nil
}

func fieldLines(value string) []string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func malformedChangesLine(path string, field string, line string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed %s entry", field)).
		WithCause(fmt.Errorf("path=%s line=%q: %w", path, line, err))
}

var _ ports.ManifestReaderPort = ChangesFileAdapter{}
