package core

import (
	"strings"

	"changes2aptly/internal/shared"
	"changes2aptly/internal/types"
)

// IsBinaryPackage reports whether a changes file entry names a .deb.
func IsBinaryPackage(name string) bool {
	return strings.HasSuffix(name, types.BinaryPackageSuffix)
}

// MetadataFileName returns the companion control file name for a package
// file, e.g. foo_1.0_amd64.deb -> foo_1.0_amd64.control.
func MetadataFileName(name string) string {
	return shared.ReplaceSuffix(name, types.BinaryPackageSuffix, types.MetadataFileSuffix)
}
