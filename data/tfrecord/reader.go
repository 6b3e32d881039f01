package tfrecord

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrCorruptRecord is returned when a length or data checksum does not match
var ErrCorruptRecord = errors.New("corrupt record")

// Reader reads records written by Writer
type Reader struct {
	r     *bufio.Reader
	index int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the payload of the next record. io.EOF marks a clean end,
// io.ErrUnexpectedEOF a truncated file.
func (rd *Reader) Next() ([]byte, error) {
	var header [12]byte
	n, err := io.ReadFull(rd.r, header[:])
	if err == io.EOF && n == 0 {
		return nil, io.EOF
	}
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if binary.LittleEndian.Uint32(header[8:12]) != maskedCRC(header[0:8]) {
		return nil, errors.Wrapf(ErrCorruptRecord, "record %d: length checksum", rd.index)
	}
	length := binary.LittleEndian.Uint64(header[0:8])
	data := make([]byte, length)
	if _, err := io.ReadFull(rd.r, data); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	var footer [4]byte
	if _, err := io.ReadFull(rd.r, footer[:]); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if binary.LittleEndian.Uint32(footer[:]) != maskedCRC(data) {
		return nil, errors.Wrapf(ErrCorruptRecord, "record %d: data checksum", rd.index)
	}
	rd.index++
	return data, nil
}
