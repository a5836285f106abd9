package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	svg "github.com/ajstarks/svgo"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	// Scale is the SVG size of one module.
	Scale = 10
	// Foreground is the colour of dark modules.
	Foreground = "#2a2a2a"
)

// ErrEncode indicates the URL cannot be represented as a QR symbol.
var ErrEncode = errors.New("qr encode failed")

// Encode returns the QR symbol for content at error correction level L.
func Encode(content string) (barcode.Barcode, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrEncode)
	}
	code, err := qr.Encode(content, qr.L, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return code, nil
}

// Render encodes content and returns the SVG document.
func Render(content string) ([]byte, error) {
	code, err := Encode(content)
	if err != nil {
		return nil, err
	}
	return renderSVG(code), nil
}

// renderSVG draws every run of dark modules in a row as one horizontal
// stroke through the row's centre line, all in a single path.
func renderSVG(code image.Image) []byte {
	bounds := code.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var path bytes.Buffer
	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			if !isDark(code, bounds, x, y) {
				x++
				continue
			}
			start := x
			for x < width && isDark(code, bounds, x, y) {
				x++
			}
			fmt.Fprintf(&path, "M%d %d.5h%d", start, y, x-start)
		}
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width*Scale, height*Scale)
	canvas.Path(path.String(),
		fmt.Sprintf(`transform="scale(%d)"`, Scale),
		fmt.Sprintf(`stroke="%s"`, Foreground),
		`fill="none"`,
	)
	canvas.End()
	return buf.Bytes()
}

func isDark(img image.Image, bounds image.Rectangle, x, y int) bool {
	r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	return r < 0x8000
}
