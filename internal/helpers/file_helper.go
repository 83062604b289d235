package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gracechurch/server/internal/models"
)

type UploadConfig struct {
	MaxSizeBytes        int64
	AllowedMimePrefixes []string
}

var DefaultMediaUploadConfig = UploadConfig{
	MaxSizeBytes:        10 * 1024 * 1024, // 10MB
	AllowedMimePrefixes: []string{"image/", "video/"},
}

// ValidateUpload checks size and sniffed content type before anything is
// sent to the asset store. Returns the detected MIME type and the media
// type it maps to.
func ValidateUpload(fileHeader *multipart.FileHeader, configs ...UploadConfig) (string, models.MediaType, error) {
	config := DefaultMediaUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return "", "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && n == 0 {
		return "", "", err
	}
	mimeType := http.DetectContentType(buffer[:n])

	for _, prefix := range config.AllowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			mediaType := models.MediaImage
			if prefix == "video/" {
				mediaType = models.MediaVideo
			}
			return mimeType, mediaType, nil
		}
	}
	return "", "", fmt.Errorf("invalid file type %s. Allowed types: image, video", mimeType)
}
