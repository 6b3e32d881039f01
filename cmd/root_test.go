package cmd_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bgokden/skynet-tfrecords/cmd"
	"github.com/bgokden/skynet-tfrecords/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGray(t *testing.T, path string, value uint8) {
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: value})
	f, err := os.Create(path)
	require.Nil(t, err)
	defer f.Close()
	require.Nil(t, png.Encode(f, img))
}

func dataDir(t *testing.T, pairs int) string {
	dir := t.TempDir()
	var manifest bytes.Buffer
	for i := 0; i < pairs; i++ {
		writeGray(t, filepath.Join(dir, "tiles", fmt.Sprintf("%d.png", i)), uint8(i))
		writeGray(t, filepath.Join(dir, "labels", fmt.Sprintf("%d.png", i)), 1)
		fmt.Fprintf(&manifest, "/data/tiles/%d.png /data/labels/%d.png\n", i, i)
	}
	require.Nil(t, os.WriteFile(filepath.Join(dir, "train.txt"), manifest.Bytes(), 0644))
	return dir
}

func run(args ...string) (int, string) {
	var out bytes.Buffer
	code := cmd.Run(context.Background(), args, &out)
	return code, out.String()
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	code, out := run()
	assert.Equal(t, cmd.ExitOK, code)
	assert.Contains(t, out, "Usage:")
}

func TestRunHelp(t *testing.T) {
	code, out := run("--help")
	assert.Equal(t, cmd.ExitOK, code)
	assert.Contains(t, out, "skynet-tfrecords -d path/to/skynet-data/output -m train.txt")
}

func TestRunConvert(t *testing.T) {
	dir := dataDir(t, 3)
	code, out := run("-d", dir, "-m", "train.txt", "-p")
	assert.Equal(t, cmd.ExitOK, code, out)
	assert.Contains(t, out, "Wrote 3 records")

	summaries, err := data.Inspect(filepath.Join(dir, "train.tfrecords"))
	require.Nil(t, err)
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.Equal(t, int64(2), s.Height)
		assert.Equal(t, int64(2), s.Width)
		assert.Equal(t, 4, s.ImageRawBytes)
		assert.Equal(t, int64(3), s.Label)
	}
}

func TestRunOutputDir(t *testing.T) {
	dir := dataDir(t, 1)
	out := t.TempDir()
	code, _ := run("--dir", dir, "--manifest", "train.txt", "--output", out)
	assert.Equal(t, cmd.ExitOK, code)
	assert.FileExists(t, filepath.Join(out, "train.tfrecords"))
}

func TestRunUsageErrors(t *testing.T) {
	dir := dataDir(t, 1)
	file := filepath.Join(dir, "train.txt")

	cases := []struct {
		name string
		args []string
	}{
		{"missing dir", []string{"-m", "train.txt"}},
		{"missing manifest", []string{"-d", dir}},
		{"dir is a file", []string{"-d", file, "-m", "train.txt"}},
		{"unknown flag", []string{"-d", dir, "-m", "train.txt", "-x"}},
		{"stray token", []string{"-d", dir, "-m", "train.txt", "extra"}},
		{"flag without value", []string{"-m", "train.txt", "-d"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, out := run(c.args...)
			assert.Equal(t, cmd.ExitUsage, code)
			assert.Contains(t, out, data.CodeInvalidArguments)
			assert.NoFileExists(t, filepath.Join(dir, "train.tfrecords"))
		})
	}
}

func TestRunDataError(t *testing.T) {
	dir := dataDir(t, 2)
	require.Nil(t, os.Remove(filepath.Join(dir, "labels", "1.png")))

	code, out := run("-d", dir, "-m", "train.txt")
	assert.Equal(t, cmd.ExitFailure, code)
	assert.Contains(t, out, "labels/1.png")

	summaries, err := data.Inspect(filepath.Join(dir, "train.tfrecords"))
	require.Nil(t, err)
	assert.Len(t, summaries, 1)
}

func TestRunInterrupted(t *testing.T) {
	dir := dataDir(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := cmd.Run(ctx, []string{"-d", dir, "-m", "train.txt"}, &out)
	assert.Equal(t, cmd.ExitInterrupted, code)
	assert.Contains(t, out.String(), "Received Ctrl + C")
}

func TestRunConfigFile(t *testing.T) {
	dir := dataDir(t, 1)
	config := filepath.Join(t.TempDir(), "config.yaml")
	require.Nil(t, os.WriteFile(config, []byte("dir: "+dir+"\nmanifest: train.txt\n"), 0644))

	code, out := run("--config", config)
	assert.Equal(t, cmd.ExitOK, code, out)
	assert.FileExists(t, filepath.Join(dir, "train.tfrecords"))

	code, _ = run("--config", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, cmd.ExitUsage, code)
}

func TestRunInspect(t *testing.T) {
	dir := dataDir(t, 2)
	code, _ := run("-d", dir, "-m", "train.txt")
	require.Equal(t, cmd.ExitOK, code)

	code, out := run("inspect", filepath.Join(dir, "train.tfrecords"))
	assert.Equal(t, cmd.ExitOK, code)
	assert.Contains(t, out, "index: 1")
	assert.Contains(t, out, "image_raw_bytes: 4")

	code, _ = run("inspect")
	assert.Equal(t, cmd.ExitUsage, code)
}

func TestRunVersion(t *testing.T) {
	code, out := run("version", "--clean")
	assert.Equal(t, cmd.ExitOK, code)
	assert.Equal(t, cmd.Version+"\n", out)
}
