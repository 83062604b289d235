package helpers

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechurch/server/internal/models"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("mediaFile", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File["mediaFile"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestValidateUploadImage(t *testing.T) {
	fh := makeFileHeader(t, "photo.png", pngHeader)

	contentType, mediaType, err := ValidateUpload(fh)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, models.MediaImage, mediaType)
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	fh := makeFileHeader(t, "photo.png", pngHeader)

	_, _, err := ValidateUpload(fh, UploadConfig{
		MaxSizeBytes:        4,
		AllowedMimePrefixes: []string{"image/"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file size exceeds")
}

func TestValidateUploadRejectsWrongType(t *testing.T) {
	fh := makeFileHeader(t, "notes.txt", []byte("just some plain text"))

	_, _, err := ValidateUpload(fh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file type")
}
