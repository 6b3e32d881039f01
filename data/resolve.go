package data

import (
	"path/filepath"

	"github.com/bgokden/skynet-tfrecords/util"
)

const (
	// PrefixLength is the length of the "/data" marker every manifest path starts with
	PrefixLength = 5
	// ManifestSuffixLength is dropped from the manifest name to build the output name
	ManifestSuffixLength = 4
	// RecordExtension is appended to the output name
	RecordExtension = ".tfrecords"
)

// Args are the structured command line arguments of a conversion
type Args struct {
	DataDir   string
	Manifest  string
	OutputDir string
	Process   bool
}

// Job is a validated conversion
type Job struct {
	DataDir      string
	ManifestPath string
	OutputPath   string
	Process      bool
}

// Resolve validates args and derives the manifest and output paths.
// Only the data directory is touched on disk.
func Resolve(args Args) (*Job, error) {
	if args.DataDir == "" {
		return nil, UsageErrorf("You must provide the location of the training data with the -d arg")
	}
	if args.Manifest == "" {
		return nil, UsageErrorf("You must provide the location of the manifest with the -m arg")
	}
	if !util.IsDir(args.DataDir) {
		return nil, UsageErrorf("The data directory you supplied with the -d arg does not exist or is not a directory")
	}
	outputDir := args.OutputDir
	if outputDir == "" {
		outputDir = args.DataDir
	}
	return &Job{
		DataDir:      args.DataDir,
		ManifestPath: args.DataDir + "/" + args.Manifest,
		OutputPath:   filepath.Join(outputDir, OutputName(args.Manifest)),
		Process:      args.Process,
	}, nil
}

// OutputName turns "train.txt" into "train.tfrecords"
func OutputName(manifest string) string {
	return util.DropLast(manifest, ManifestSuffixLength) + RecordExtension
}
