package integration

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changes2aptly/internal/app"
	"changes2aptly/internal/types"
	"changes2aptly/tests/testutil"
)

func obsChanges(root string) []string {
	dir := filepath.Join(root, "tests", "integration", "testdata", "obs")
	return []string{
		filepath.Join(dir, "hello_2.10-3_amd64.changes"),
		filepath.Join(dir, "libfoo_0.5-1_arm64.changes"),
	}
}

// TestGoldenRecords runs the generator over the OBS fixtures and compares the
// JSON output with the committed golden file. A missing golden file is
// written so it can be committed.
//
// To update the golden file after an intentional change, delete
// testdata/golden/records.json and re-run the test.
func TestGoldenRecords(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenPath := filepath.Join(root, "tests", "integration", "testdata", "golden", "records.json")

	var out bytes.Buffer
	result, err := app.NewService().Generate(t.Context(), app.GenerateRequest{
		ChangesPaths: obsChanges(root),
		Output:       &out,
	})
	require.NoError(t, err)
	assert.Equal(t, app.GenerateResult{Manifests: 2, Records: 4}, result)

	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755))
		require.NoError(t, os.WriteFile(goldenPath, out.Bytes(), 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(expected), out.String(),
		"golden mismatch -- delete testdata/golden/records.json and re-run to regenerate")
}

// TestGoldenRecordsStructure checks properties of the generated records that
// hold regardless of the exact fixture content.
func TestGoldenRecordsStructure(t *testing.T) {
	root := testutil.RepoRoot(t)
	records, err := app.NewService().BuildRecords(t.Context(), obsChanges(root))
	require.NoError(t, err)
	require.Len(t, records, 4)

	get := func(t *testing.T, record types.Record, field string) string {
		t.Helper()
		value, ok := record.Get(field)
		require.True(t, ok, "missing field %s", field)
		return value
	}

	t.Run("records follow changes order", func(t *testing.T) {
		packages := make([]string, 0, len(records))
		for _, record := range records {
			packages = append(packages, get(t, record, types.FieldPackage))
		}
		assert.Equal(t, []string{"hello", "hello-doc", "libfoo1", "libfoo-dev"}, packages)
	})

	t.Run("keys are unique and well formed", func(t *testing.T) {
		seen := map[string]struct{}{}
		for _, record := range records {
			key := get(t, record, types.FieldKey)
			assert.NotContains(t, seen, key)
			seen[key] = struct{}{}

			parsed, err := types.ParseKey(key)
			require.NoError(t, err)
			assert.Equal(t, get(t, record, types.FieldShortKey), parsed.ShortKey())
			assert.Equal(t, get(t, record, types.FieldFilesHash), parsed.Hash)
			assert.True(t, strings.HasPrefix(key, get(t, record, types.FieldShortKey)+" "))
		}
	})

	t.Run("sha512 hashes the sha256 text", func(t *testing.T) {
		for _, record := range records {
			sum := sha512.Sum512([]byte(get(t, record, types.FieldSHA256)))
			assert.Equal(t, hex.EncodeToString(sum[:]), get(t, record, types.FieldSHA512))
		}
	})

	t.Run("overlay replaces stale control fields in place", func(t *testing.T) {
		record := records[3]
		fields := record.Fields()
		assert.Equal(t, types.FieldKey, fields[len(fields)-1])
		assert.Less(t, slices.Index(fields, types.FieldSHA256), slices.Index(fields, "Description"))
		sha256 := get(t, record, types.FieldSHA256)
		assert.Len(t, sha256, 64)
		assert.NotEqual(t, strings.Repeat("0", 64), sha256)
	})
}

func TestGoldenRecordsReversedOrder(t *testing.T) {
	root := testutil.RepoRoot(t)
	paths := obsChanges(root)
	records, err := app.NewService().BuildRecords(t.Context(), []string{paths[1], paths[0]})
	require.NoError(t, err)

	keys := make([]string, 0, len(records))
	for _, record := range records {
		key, _ := record.Get(types.FieldKey)
		keys = append(keys, key)
	}
	assert.Equal(t, []string{
		"Parm64 libfoo1 0.5-1 b07a145b1a7c5871",
		"Parm64 libfoo-dev 0.5-1 245b426add7b4ee0",
		"Pamd64 hello 2.10-3 6316ab64d6dfa825",
		"Pall hello-doc 2.10-3 12b22a63697c30d1",
	}, keys)
}
