package adapters

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"changes2aptly/internal/ports"
	"changes2aptly/internal/types"
)

const pgpSignedHeader = "-----BEGIN PGP SIGNED MESSAGE-----"

// ControlFileAdapter reads deb822 control files such as the per-package
// .control metadata written next to a changes file.
type ControlFileAdapter struct{}

func NewControlFileAdapter() ControlFileAdapter {
	return ControlFileAdapter{}
}

func (a ControlFileAdapter) ReadMetadata(path string) (types.Paragraph, error) {
	return readControlFile(path, "control file")
}

// readControlFile returns the first paragraph of the file at path. kind
// names the file in error messages.
func readControlFile(path string, kind string) (types.Paragraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Paragraph{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(kind + " not found").
				WithCause(err)
		}
		return types.Paragraph{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read " + kind).
			WithCause(err)
	}
	paragraphs, err := parseControl(data)
	if err != nil {
		return types.Paragraph{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed " + kind).
			WithCause(fmt.Errorf("path=%s: %w", path, err))
	}
	if len(paragraphs) == 0 {
		return types.Paragraph{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(kind + " has no paragraph").
			WithCause(fmt.Errorf("path=%s", path))
	}
	return paragraphs[0], nil
}

// parseControl splits data into paragraphs. A PGP clear-signed envelope is
// removed first; the signature itself is not checked.
func parseControl(data []byte) ([]types.Paragraph, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(pgpSignedHeader)) {
		block, _ := clearsign.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("invalid PGP signed message")
		}
		data = block.Plaintext
	}
	return parseParagraphs(bytes.NewReader(data))
}

func parseParagraphs(reader io.Reader) ([]types.Paragraph, error) {
	var paragraphs []types.Paragraph
	current := types.NewParagraph()
	lastField := ""
	lineNo := 0
	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, current)
		}
		current = types.NewParagraph()
		lastField = ""
	}
	buffered := bufio.NewReader(reader)
	for {
		line, err := buffered.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case strings.HasPrefix(line, "#"):
		case line[0] == ' ' || line[0] == '\t':
			if lastField == "" {
				return nil, fmt.Errorf("line %d: continuation line outside of a field", lineNo)
			}
			value, _ := current.Get(lastField)
			current.Set(lastField, value+"\n"+strings.TrimRight(line, " \t"))
		default:
			name, value, ok := strings.Cut(line, ":")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, fmt.Errorf("line %d: expected \"Field: value\"", lineNo)
			}
			if current.Has(name) {
				return nil, fmt.Errorf("line %d: duplicate field %s", lineNo, name)
			}
			current.Set(name, strings.TrimSpace(value))
			lastField = name
		}
		if err == io.EOF {
			break
		}
	}
	flush()
	return paragraphs, nil
}

var _ ports.MetadataReaderPort = ControlFileAdapter{}
