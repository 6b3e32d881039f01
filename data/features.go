package data

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/bgokden/skynet-tfrecords/models"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/gonum/mat"
)

// Luminance weights applied to colour sources
const (
	lumaR = 0.2125
	lumaG = 0.7154
	lumaB = 0.0721
)

// ByteScale is the factor applied to image intensities before the byte cast
const ByteScale = 255

// DecodeGray reads the image at path as a single channel height x width matrix
func DecodeGray(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening image %s", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	gray, err := ToGray(img)
	if err != nil {
		return nil, errors.Wrapf(err, "image %s", path)
	}
	return gray, nil
}

// ToGray converts img to a matrix. Gray and Gray16 sources keep their raw
// integer intensities, every other colour model becomes luminance in [0, 1].
func ToGray(img image.Image) (*mat.Dense, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.Errorf("empty image %dx%d", w, h)
	}
	data := make([]float64, w*h)
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x, v := range src.Pix[off : off+w] {
				data[y*w+x] = float64(v)
			}
		}
	case *image.Gray16:
		// two bytes per pixel, big endian
		for y := 0; y < h; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(uint16(row[2*x])<<8 | uint16(row[2*x+1]))
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				data[y*w+x] = lumaR*float64(c.R)/0xffff + lumaG*float64(c.G)/0xffff + lumaB*float64(c.B)/0xffff
			}
		}
	}
	return mat.NewDense(h, w, data), nil
}

// ScaleToBytes multiplies every element by ByteScale, truncates toward zero and
// keeps the low 8 bits, flattened row-major. Integer valued inputs wrap.
func ScaleToBytes(m *mat.Dense) []byte {
	var scaled mat.Dense
	scaled.Scale(ByteScale, m)
	raw := scaled.RawMatrix()
	out := make([]byte, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		for _, v := range raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols] {
			out = append(out, byte(int64(v)))
		}
	}
	return out
}

// CountNonZero counts the elements of m that are not zero
func CountNonZero(m *mat.Dense) int {
	raw := m.RawMatrix()
	n := 0
	for i := 0; i < raw.Rows; i++ {
		for _, v := range raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// ExtractFeatures builds the sample for one manifest entry.
// Zero valued label pixels are data pixels, so the label is the number of them
// counted against the dimensions of the image, not of the label.
func ExtractFeatures(entry Entry) (*models.Sample, error) {
	img, err := DecodeGray(entry.ImagePath)
	if err != nil {
		return nil, err
	}
	height, width := img.Dims()
	imageRaw := ScaleToBytes(img)

	labels, err := DecodeGray(entry.LabelPath)
	if err != nil {
		return nil, err
	}
	return &models.Sample{
		Height:   int64(height),
		Width:    int64(width),
		ImageRaw: imageRaw,
		Label:    int64(width*height - CountNonZero(labels)),
	}, nil
}
