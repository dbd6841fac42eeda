package types

// ArtifactEntry is one line of the Files field of a changes file.
type ArtifactEntry struct {
	Name     string
	Size     uint64
	MD5Sum   string
	Section  string
	Priority string
}

// ChecksumEntry is one line of a Checksums-* field of a changes file.
type ChecksumEntry struct {
	Name   string
	Size   uint64
	Digest string
}

type Manifest struct {
	Path            string
	Fields          Paragraph
	Files           []ArtifactEntry
	ChecksumsSha1   []ChecksumEntry
	ChecksumsSha256 []ChecksumEntry
}

// PackageFile carries the identity of a single package file as aptly
// hashes it.
type PackageFile struct {
	Name   string
	Size   uint64
	MD5    string
	SHA1   string
	SHA256 string
}

// SHA1For returns the first Checksums-Sha1 digest listed for name.
func (m Manifest) SHA1For(name string) (string, bool) {
	return findChecksum(m.ChecksumsSha1, name)
}

// SHA256For returns the first Checksums-Sha256 digest listed for name.
func (m Manifest) SHA256For(name string) (string, bool) {
	return findChecksum(m.ChecksumsSha256, name)
}

func findChecksum(entries []ChecksumEntry, name string) (string, bool) {
	for _, entry := range entries {
		if entry.Name == name {
			return entry.Digest, true
		}
	}
	return "", false
}
