// Package qr renders customer-facing order links as QR images.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// DataURL encodes the given URL as a PNG QR code wrapped in a data URL,
// ready to embed in an <img> tag.
func DataURL(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("url is required")
	}

	png, err := qrcode.Encode(url, qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
