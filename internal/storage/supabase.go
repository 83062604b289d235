package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Client wraps the Supabase storage API for a single bucket. Rows in the
// media table store the object key returned here as asset_id, so remote
// deletes can be issued later.
type Client struct {
	api    *storage_go.Client
	bucket string
}

func New(projectURL, serviceKey, bucket string) *Client {
	api := storage_go.NewClient(strings.TrimRight(projectURL, "/")+"/storage/v1", serviceKey, nil)
	return &Client{api: api, bucket: bucket}
}

// Upload stores the file under a generated object key and returns the
// public URL plus the key. Nothing is persisted locally on failure.
func (c *Client) Upload(file io.Reader, filename, contentType string) (url, assetID string, err error) {
	folder := "images"
	if strings.HasPrefix(contentType, "video/") {
		folder = "videos"
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(filename))

	_, err = c.api.UploadFile(c.bucket, key, file, storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("asset upload failed: %w", err)
	}

	return c.api.GetPublicUrl(c.bucket, key).SignedURL, key, nil
}

func (c *Client) Delete(assetID string) error {
	_, err := c.api.RemoveFile(c.bucket, []string{assetID})
	if err != nil {
		return fmt.Errorf("asset delete failed: %w", err)
	}
	return nil
}
