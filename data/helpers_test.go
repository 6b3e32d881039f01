package data_test

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magneticio/go-common/logging"
	"github.com/stretchr/testify/require"
)

func init() {
	logging.Init(io.Discard, io.Discard)
}

// writeGray stores a w x h 8-bit gray PNG whose pixels come from value
func writeGray(t *testing.T, path string, w, h int, value func(x, y int) uint8) {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: value(x, y)})
		}
	}
	writePNG(t, path, img)
}

func writePNG(t *testing.T, path string, img image.Image) {
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.Nil(t, err)
	defer f.Close()
	require.Nil(t, png.Encode(f, img))
}

// fixture is a data directory with tiles/i.png and labels/i.png for every pair,
// and a train.txt manifest listing them with the /data marker
type fixture struct {
	dir   string
	lines []string
}

func newFixture(t *testing.T, pairs int) *fixture {
	fx := &fixture{dir: t.TempDir()}
	for i := 0; i < pairs; i++ {
		w, h := 3+i, 2
		writeGray(t, filepath.Join(fx.dir, "tiles", fmt.Sprintf("%d.png", i)), w, h, func(x, y int) uint8 {
			return uint8(y*w + x + i)
		})
		// the first i+1 pixels are no-data
		writeGray(t, filepath.Join(fx.dir, "labels", fmt.Sprintf("%d.png", i)), w, h, func(x, y int) uint8 {
			if y*w+x <= i {
				return 255
			}
			return 0
		})
		fx.lines = append(fx.lines, fmt.Sprintf("/data/tiles/%d.png /data/labels/%d.png", i, i))
	}
	fx.writeManifest(t, "train.txt", fx.lines)
	return fx
}

func (fx *fixture) writeManifest(t *testing.T, name string, lines []string) {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.Nil(t, os.WriteFile(filepath.Join(fx.dir, name), []byte(content), 0644))
}
