package infra

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// RenderBarcodePNG renders a unit barcode value as a scannable QR PNG.
// Pure and stateless — safe to call concurrently per item.
func RenderBarcodePNG(value string, size int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("barcode: empty value")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(value, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("barcode: encode %q: %w", value, err)
	}
	return png, nil
}
