package data

import (
	"bufio"
	"io"
	"strings"

	"github.com/bgokden/skynet-tfrecords/util"
	"github.com/pkg/errors"
)

// Entry is one image/label pair from a manifest, with paths resolved against the data directory
type Entry struct {
	ImagePath string
	LabelPath string
}

// ManifestIterator yields entries from a manifest stream. It makes a single pass.
type ManifestIterator struct {
	r       *bufio.Reader
	dataDir string
	line    int
}

func NewManifestIterator(r io.Reader, dataDir string) *ManifestIterator {
	return &ManifestIterator{
		r:       bufio.NewReader(r),
		dataDir: dataDir,
	}
}

// Next returns the next entry or io.EOF when the manifest is exhausted
func (it *ManifestIterator) Next() (Entry, error) {
	line, err := it.r.ReadString('\n')
	if err == io.EOF && line == "" {
		return Entry{}, io.EOF
	}
	if err != nil && err != io.EOF {
		return Entry{}, errors.Wrapf(err, "reading manifest line %d", it.line+1)
	}
	it.line++
	entry, err := ParseLine(line, it.dataDir)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "line %d", it.line)
	}
	return entry, nil
}

// Line is the number of lines consumed so far
func (it *ManifestIterator) Line() int {
	return it.line
}

// ParseLine splits a raw manifest line on spaces and resolves the first two tokens.
// Tokens after the second are ignored.
func ParseLine(line, dataDir string) (Entry, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return Entry{}, errors.Wrapf(ErrMalformedLine, "%q", line)
	}
	return Entry{
		ImagePath: ResolvePath(tokens[0], dataDir),
		LabelPath: ResolvePath(trimLineEnd(tokens[1]), dataDir),
	}, nil
}

// trimLineEnd removes a trailing "\n" or "\r\n"
func trimLineEnd(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

// ResolvePath replaces the "/data" marker of a manifest token with dataDir
func ResolvePath(token, dataDir string) string {
	return dataDir + util.DropFirst(token, PrefixLength)
}
