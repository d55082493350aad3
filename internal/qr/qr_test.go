package qr

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURL(t *testing.T) {
	t.Parallel()

	dataURL, err := DataURL("https://shop.example/order/4ddab319-9534-4dd6-8f34-6e23ba51a371")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("missing data URL prefix: %q", dataURL[:min(len(dataURL), 30)])
	}

	raw, err := base64.StdEncoding.DecodeString(dataURL[len(prefix):])
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if len(raw) < len(pngMagic) || string(raw[:4]) != string(pngMagic) {
		t.Fatal("payload is not a PNG image")
	}
}

func TestDataURLRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := DataURL(""); err == nil {
		t.Fatal("expected error for empty content")
	}
}
