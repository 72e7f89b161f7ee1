package imagepkg

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// QR sizes accepted by the standalone endpoint, in pixels.
const (
	MinQRSize = 64
	MaxQRSize = 2048
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("qr text is empty")
	}
	if size < MinQRSize || size > MaxQRSize {
		return nil, fmt.Errorf("qr size %d outside [%d, %d]", size, MinQRSize, MaxQRSize)
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns a QR code image with no quiet-zone border, for
// drawing onto a cover.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Image(size), nil
}
