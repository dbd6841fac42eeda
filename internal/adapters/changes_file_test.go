package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changes2aptly/internal/types"
)

const unsignedChanges = `Format: 1.8
Source: bar
Version: 2.0-1
Files:
 d41d8cd98f00b204e9800998ecf8427e 10 libs optional bar_2.0-1_amd64.deb
 900150983cd24fb0d6963f7d28e17f72 20 libs optional bar-dbgsym_2.0-1_amd64.ddeb
Checksums-Sha1:
 da39a3ee5e6b4b0d3255bfef95601890afd80709 10 bar_2.0-1_amd64.deb
Checksums-Sha256:
 e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855 10 bar_2.0-1_amd64.deb
`

func TestReadManifest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bar_2.0-1_amd64.changes", unsignedChanges)

	manifest, err := NewChangesFileAdapter().ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, manifest.Path)

	wantFiles := []types.ArtifactEntry{
		{Name: "bar_2.0-1_amd64.deb", Size: 10, MD5Sum: "d41d8cd98f00b204e9800998ecf8427e", Section: "libs", Priority: "optional"},
		{Name: "bar-dbgsym_2.0-1_amd64.ddeb", Size: 20, MD5Sum: "900150983cd24fb0d6963f7d28e17f72", Section: "libs", Priority: "optional"},
	}
	if diff := cmp.Diff(wantFiles, manifest.Files); diff != "" {
		t.Fatalf("unexpected files (-want +got):\n%s", diff)
	}
	wantSha1 := []types.ChecksumEntry{
		{Name: "bar_2.0-1_amd64.deb", Size: 10, Digest: "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
	}
	if diff := cmp.Diff(wantSha1, manifest.ChecksumsSha1); diff != "" {
		t.Fatalf("unexpected sha1 entries (-want +got):\n%s", diff)
	}
	sha256, ok := manifest.SHA256For("bar_2.0-1_amd64.deb")
	require.True(t, ok)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", sha256)
	source, _ := manifest.Fields.Get("source")
	assert.Equal(t, "bar", source)
}

func TestReadSignedManifest(t *testing.T) {
	manifest, err := NewChangesFileAdapter().ReadManifest(filepath.Join("testdata", "foo_1.0-1_amd64.changes"))
	require.NoError(t, err)

	require.Len(t, manifest.Files, 2)
	assert.Equal(t, "foo_1.0-1_amd64.deb", manifest.Files[0].Name)
	assert.Equal(t, uint64(12345), manifest.Files[0].Size)
	assert.Equal(t, "foo_1.0-1.dsc", manifest.Files[1].Name)
	require.Len(t, manifest.ChecksumsSha1, 2)
	require.Len(t, manifest.ChecksumsSha256, 2)

	changes, _ := manifest.Fields.Get("Changes")
	assert.Equal(t, "\n foo (1.0-1) unstable; urgency=medium\n .\n   * Initial release.", changes)
	_, signed := manifest.Fields.Get("Hash")
	assert.False(t, signed, "armor headers must not leak into the paragraph")
}

func TestReadManifestWithoutChecksumFields(t *testing.T) {
	content := "Source: baz\nFiles:\n d41d8cd98f00b204e9800998ecf8427e 1 misc optional baz_1_all.deb\n"
	path := writeFile(t, t.TempDir(), "baz.changes", content)

	manifest, err := NewChangesFileAdapter().ReadManifest(path)
	require.NoError(t, err)
	assert.Len(t, manifest.Files, 1)
	assert.Empty(t, manifest.ChecksumsSha1)
	assert.Empty(t, manifest.ChecksumsSha256)
}

func TestReadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errbuilder.ErrCode
		msg     string
	}{
		{
			name:    "no files field",
			content: "Source: baz\n",
			code:    errbuilder.CodeInvalidArgument,
			msg:     "changes file has no Files field",
		},
		{
			name:    "short files line",
			content: "Files:\n d41d8cd98f00b204e9800998ecf8427e 1 baz_1_all.deb\n",
			code:    errbuilder.CodeInvalidArgument,
			msg:     "malformed Files entry",
		},
		{
			name:    "negative size",
			content: "Files:\n d41d8cd98f00b204e9800998ecf8427e -1 misc optional baz_1_all.deb\n",
			code:    errbuilder.CodeInvalidArgument,
			msg:     "malformed Files entry",
		},
		{
			name:    "size beyond 64 bits",
			content: "Files:\n d41d8cd98f00b204e9800998ecf8427e 18446744073709551616 misc optional baz_1_all.deb\n",
			code:    errbuilder.CodeInvalidArgument,
			msg:     "malformed Files entry",
		},
		{
			name: "bad checksum line",
			content: "Files:\n d41d8cd98f00b204e9800998ecf8427e 1 misc optional baz_1_all.deb\n" +
				"Checksums-Sha256:\n e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855 baz_1_all.deb\n",
			code: errbuilder.CodeInvalidArgument,
			msg:  "malformed Checksums-Sha256 entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "baz.changes", tt.content)
			_, err := NewChangesFileAdapter().ReadManifest(path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := NewChangesFileAdapter().ReadManifest(filepath.Join(t.TempDir(), "nope.changes"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "changes file not found")
}
