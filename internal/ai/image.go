package ai

import (
	"encoding/base64"
	"strings"
)

// DefaultImageType подставляется, когда загрузка пришла без Content-Type.
const DefaultImageType = "image/png"

// DataURL кодирует байты картинки в data URL для поля image_url.
func DataURL(contentType string, data []byte) string {
	mime := strings.TrimSpace(contentType)
	if mime == "" {
		mime = DefaultImageType
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
