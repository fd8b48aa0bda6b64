package util

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// PickMIME: сначала Content-Type ответа (если это картинка), затем сигнатура по байтам.
func PickMIME(contentType string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(strings.TrimSpace(contentType)); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	if len(data) > 0 {
		if m := mimetype.Detect(data); strings.HasPrefix(m.String(), "image/") {
			return m.String()
		}
	}
	// Telegram отдаёт фото в JPEG
	return "image/jpeg"
}
