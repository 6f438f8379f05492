package sink

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/willbeason/newton-fractal/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for x := 0; x < 6; x++ {
		for y := 0; y < 4; y++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(40 * x), G: uint8(60 * y), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeDecode(t *testing.T) {
	img := testImage()

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, img); err != nil {
				t.Fatalf("Encode error: %v", err)
			}

			decoded, got, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if got != format {
				t.Errorf("decoded format = %q, want %q", got, format)
			}
			if decoded.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
			}
		})
	}
}

func TestEncodeLosslessFormats(t *testing.T) {
	img := testImage()

	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF} {
		var buf bytes.Buffer
		if err := Encode(&buf, format, img); err != nil {
			t.Fatalf("Encode(%s) error: %v", format, err)
		}
		decoded, _, err := image.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", format, err)
		}

		for x := 0; x < 6; x++ {
			for y := 0; y < 4; y++ {
				want := img.RGBAAt(x, y)
				r, g, b, a := decoded.At(x, y).RGBA()
				got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
				if got != want {
					t.Fatalf("%s pixel (%d, %d) = %v, want %v", format, x, y, got, want)
				}
			}
		}
	}
}

func TestEncodeUnsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, "gif", testImage())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"fractal.png", FormatPNG, false},
		{"out/fractal.PNG", FormatPNG, false},
		{"fractal.jpg", FormatJPEG, false},
		{"fractal.jpeg", FormatJPEG, false},
		{"fractal.bmp", FormatBMP, false},
		{"fractal.tif", FormatTIFF, false},
		{"fractal", FormatPNG, false},
		{"fractal.gif", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fractal.bmp")

	var buf bytes.Buffer
	if err := Encode(&buf, FormatBMP, testImage()); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if err := WriteBytes(path, buf.Bytes()); err != nil {
		t.Fatalf("WriteBytes error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig error: %v", err)
	}
	if format != FormatBMP {
		t.Errorf("format = %q, want %q", format, FormatBMP)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(FormatPNG); got != "image/png" {
		t.Errorf("ContentType(png) = %q", got)
	}
}
