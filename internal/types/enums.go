package types

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML:
		return OutputFormatYAML, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output format must be json or yaml")
	}
}

// Fields written over the companion metadata of every record.
const (
	FieldFilesHash = "FilesHash"
	FieldMD5Sum    = "MD5sum"
	FieldSHA1      = "SHA1"
	FieldSHA256    = "SHA256"
	FieldSHA512    = "SHA512"
	FieldShortKey  = "ShortKey"
	FieldKey       = "Key"
)

// Metadata fields a control file must carry to be keyed.
const (
	FieldArchitecture = "Architecture"
	FieldPackage      = "Package"
	FieldVersion      = "Version"
)

const (
	BinaryPackageSuffix = ".deb"
	MetadataFileSuffix  = ".control"
)
