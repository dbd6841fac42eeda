package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"changes2aptly/internal/shared"
)

// AptlyKey identifies a package in an aptly database:
// "P<arch> <package> <version> <files hash>".
type AptlyKey struct {
	Architecture string
	Package      string
	Version      string
	Hash         string
}

func (k AptlyKey) ShortKey() string {
	return fmt.Sprintf("P%s %s %s", k.Architecture, k.Package, k.Version)
}

func (k AptlyKey) String() string {
	return k.ShortKey() + " " + k.Hash
}

func (k AptlyKey) IsSource() bool {
	return k.Architecture == "source"
}

func (k AptlyKey) IsBinary() bool {
	return !k.IsSource()
}

// Compare orders keys by package, Debian version, architecture and hash.
func (k AptlyKey) Compare(other AptlyKey) int {
	if c := strings.Compare(k.Package, other.Package); c != 0 {
		return c
	}
	if c := compareDebVersions(k.Version, other.Version); c != 0 {
		return c
	}
	if c := strings.Compare(k.Architecture, other.Architecture); c != 0 {
		return c
	}
	return strings.Compare(k.Hash, other.Hash)
}

func compareDebVersions(a string, b string) int {
	va, err := debversion.NewVersion(a)
	if err != nil {
		return strings.Compare(a, b)
	}
	vb, err := debversion.NewVersion(b)
	if err != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

// ParseKey parses the textual form of an aptly key. aptly prints the hash
// without leading zeros, so any hex string up to 16 digits is accepted and
// stored lowercase.
func ParseKey(value string) (AptlyKey, error) {
	if !strings.HasPrefix(value, "P") {
		return AptlyKey{}, invalidKey("invalid aptly key", value)
	}
	parts := strings.Split(value, " ")
	if len(parts) != 4 {
		return AptlyKey{}, invalidKey("invalid aptly key", value)
	}
	arch := strings.TrimPrefix(parts[0], "P")
	if len(arch) < 3 {
		return AptlyKey{}, invalidKey("invalid architecture field", value)
	}
	pkg := parts[1]
	if pkg == "" {
		return AptlyKey{}, invalidKey("invalid package field", value)
	}
	version := parts[2]
	if _, err := debversion.NewVersion(version); err != nil {
		return AptlyKey{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid version field").
			WithCause(fmt.Errorf("key=%q: %w", value, err))
	}
	hash := parts[3]
	if len(hash) > 16 || !shared.IsHex(hash) {
		return AptlyKey{}, invalidKey("invalid hash field", value)
	}
	return AptlyKey{
		Architecture: arch,
		Package:      pkg,
		Version:      version,
		Hash:         strings.ToLower(hash),
	}, nil
}

func invalidKey(msg string, value string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg).
		WithCause(fmt.Errorf("key=%q", value))
}
