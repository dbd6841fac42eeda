package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"changes2aptly/internal/types"
)

// DeriveKeys builds the aptly ShortKey and Key. Fields are joined verbatim;
// a package name or version containing spaces yields an ambiguous key.
func DeriveKeys(ctx context.Context, architecture string, packageName string, version string, filesHash string) (string, string) {
	assert.NotEmpty(ctx, architecture, "architecture must be set")
	assert.NotEmpty(ctx, packageName, "package must be set")
	assert.NotEmpty(ctx, version, "version must be set")
	assert.NotEmpty(ctx, filesHash, "files hash must be set")
	key := types.AptlyKey{
		Architecture: architecture,
		Package:      packageName,
		Version:      version,
		Hash:         filesHash,
	}
	return key.ShortKey(), key.String()
}
