package data

import (
	"io"
	"os"

	"github.com/bgokden/skynet-tfrecords/data/tfrecord"
	"github.com/pkg/errors"
)

// RecordSummary describes one record of a record file without its pixels
type RecordSummary struct {
	Index         int   `yaml:"index"`
	Height        int64 `yaml:"height"`
	Width         int64 `yaml:"width"`
	ImageRawBytes int   `yaml:"image_raw_bytes"`
	Label         int64 `yaml:"label"`
}

// Inspect reads every record of the file at path and summarizes it
func Inspect(path string) ([]RecordSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening record file %s", path)
	}
	defer f.Close()

	summaries := make([]RecordSummary, 0)
	r := tfrecord.NewReader(f)
	for i := 0; ; i++ {
		record, err := r.Next()
		if err == io.EOF {
			return summaries, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading record %d of %s", i, path)
		}
		sample, err := tfrecord.UnmarshalExample(record)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d of %s", i, path)
		}
		summaries = append(summaries, RecordSummary{
			Index:         i,
			Height:        sample.Height,
			Width:         sample.Width,
			ImageRawBytes: len(sample.ImageRaw),
			Label:         sample.Label,
		})
	}
}
