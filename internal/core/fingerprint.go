package core

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/shared"
	"changes2aptly/internal/types"
)

const (
	md5HexLen    = 32
	sha1HexLen   = 40
	sha256HexLen = 64
)

// FilesHasher computes aptly's FilesHash: FNV-1a 64 over, for every file
// in the order added, the basename, the size as 8 big-endian bytes and the
// md5, sha1 and sha256 digests as hex text.
type FilesHasher struct {
	h hash.Hash64
}

func NewFilesHasher() *FilesHasher {
	return &FilesHasher{h: fnv.New64a()}
}

func (f *FilesHasher) Add(file types.PackageFile) error {
	if err := ValidatePackageFile(file); err != nil {
		return err
	}
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], file.Size)
	// hash.Hash writes never fail.
	_, _ = f.h.Write([]byte(file.Name))
	_, _ = f.h.Write(size[:])
	_, _ = f.h.Write([]byte(file.MD5))
	_, _ = f.h.Write([]byte(file.SHA1))
	_, _ = f.h.Write([]byte(file.SHA256))
	return nil
}

func (f *FilesHasher) Sum64() uint64 {
	return f.h.Sum64()
}

func (f *FilesHasher) Hex() string {
	return FormatFingerprint(f.Sum64())
}

// Fingerprint returns the FilesHash of a single package file.
func Fingerprint(name string, size uint64, md5 string, sha1 string, sha256 string) (uint64, error) {
	hasher := NewFilesHasher()
	err := hasher.Add(types.PackageFile{
		Name:   name,
		Size:   size,
		MD5:    md5,
		SHA1:   sha1,
		SHA256: sha256,
	})
	if err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}

// FormatFingerprint renders a fingerprint the way aptly prints it: lowercase
// hex, no prefix and no zero padding.
func FormatFingerprint(value uint64) string {
	return strconv.FormatUint(value, 16)
}

func ValidatePackageFile(file types.PackageFile) error {
	if file.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package file name is empty")
	}
	digests := []struct {
		algorithm string
		value     string
		length    int
	}{
		{"md5", file.MD5, md5HexLen},
		{"sha1", file.SHA1, sha1HexLen},
		{"sha256", file.SHA256, sha256HexLen},
	}
	for _, digest := range digests {
		if !shared.IsHexDigest(digest.value, digest.length) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid %s digest", digest.algorithm)).
				WithCause(fmt.Errorf("file=%s digest=%q", file.Name, digest.value))
		}
	}
	return nil
}
