package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

func TestPickMIMEPrefersImageContentType(t *testing.T) {
	assert.Equal(t, "image/webp", PickMIME("image/webp; charset=binary", jpegMagic))
}

func TestPickMIMESniffsBytes(t *testing.T) {
	assert.Equal(t, "image/jpeg", PickMIME("application/octet-stream", jpegMagic))
	assert.Equal(t, "image/png", PickMIME("application/octet-stream", pngMagic))
	assert.Equal(t, "image/gif", PickMIME("", []byte("GIF89a\x01\x00\x01\x00")))
}

func TestPickMIMEFallsBackToJPEG(t *testing.T) {
	assert.Equal(t, "image/jpeg", PickMIME("", nil))
	assert.Equal(t, "image/jpeg", PickMIME("text/html", []byte("hello")))
}
