package app

import (
	"io"

	"changes2aptly/internal/types"
)

// GenerateRequest names the changes files (or directories holding them) to
// process. Records go to OutputPath when set, otherwise to Output.
type GenerateRequest struct {
	ChangesPaths []string
	Format       string
	Output       io.Writer
	OutputPath   string
}

type GenerateResult struct {
	Manifests int
	Records   int
}

type InspectKeyRequest struct {
	Keys []string
}

type InspectKeyResult struct {
	Keys []types.AptlyKey
}
