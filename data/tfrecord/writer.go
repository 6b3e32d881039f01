package tfrecord

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Writer appends length-prefixed, checksummed records to a file.
// A Writer is not safe for concurrent use.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	closed bool
	count  int
}

// Create truncates or creates the file at path and returns a Writer bound to it
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating record file %s", path)
	}
	return &Writer{
		file: f,
		buf:  bufio.NewWriter(f),
	}, nil
}

// Write frames data and appends it
func (w *Writer) Write(data []byte) error {
	if w.closed {
		return errors.New("write on closed record writer")
	}
	if err := writeRecord(w.buf, data); err != nil {
		return errors.Wrapf(err, "writing record %d to %s", w.count, w.file.Name())
	}
	w.count++
	return nil
}

// Count is the number of records written so far
func (w *Writer) Count() int {
	return w.count
}

// Name of the underlying file
func (w *Writer) Name() string {
	return w.file.Name()
}

// Close flushes buffered records and closes the file. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return errors.Wrapf(flushErr, "flushing %s", w.file.Name())
	}
	return closeErr
}

func writeRecord(out io.Writer, data []byte) error {
	var header [12]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(len(data)))
	binary.LittleEndian.PutUint32(header[8:12], maskedCRC(header[0:8]))
	if _, err := out.Write(header[:]); err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(data))
	_, err := out.Write(footer[:])
	return err
}
