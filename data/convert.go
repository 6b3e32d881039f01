package data

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bgokden/skynet-tfrecords/data/tfrecord"
	"github.com/magneticio/go-common/logging"
	"github.com/pkg/errors"
)

// Convert writes one record per manifest line of job to its output file and
// returns the number of records written. The first failing entry aborts the
// run; records written before it stay in the output file.
func Convert(ctx context.Context, job *Job) (n int, err error) {
	manifest, err := os.Open(job.ManifestPath)
	if err != nil {
		return 0, errors.Wrapf(err, "opening manifest %s", job.ManifestPath)
	}
	defer manifest.Close()

	writer, err := tfrecord.Create(job.OutputPath)
	if err != nil {
		return 0, err
	}
	// the writer is closed on every path so records already written are flushed
	defer func() {
		if closeErr := writer.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	logging.Info("Writing records to %v\n", writer.Name())
	if job.Process {
		logging.Info("Process flag set, images are written unprocessed\n")
	}

	it := NewManifestIterator(manifest, job.DataDir)
	for {
		select {
		case <-ctx.Done():
			return writer.Count(), ErrInterrupted
		default:
		}
		entry, err := it.Next()
		if err == io.EOF {
			return writer.Count(), nil
		}
		if err != nil {
			return writer.Count(), err
		}
		sample, err := ExtractFeatures(entry)
		if err != nil {
			return writer.Count(), errors.Wrapf(err, "manifest line %d", it.Line())
		}
		if err := writer.Write(tfrecord.MarshalExample(sample)); err != nil {
			return writer.Count(), err
		}
		logging.Info("%v: %vx%v label %v\n", entry.ImagePath, sample.Width, sample.Height, sample.Label)
	}
}

// ReadData converts "<manifestName>.txt" found in dir, the programmatic
// equivalent of "-d dir -m manifestName.txt".
func ReadData(ctx context.Context, dir string, manifestName string) (int, error) {
	fmt.Println("reading " + manifestName)
	job, err := Resolve(Args{
		DataDir:  dir,
		Manifest: manifestName + ".txt",
	})
	if err != nil {
		return 0, err
	}
	return Convert(ctx, job)
}
