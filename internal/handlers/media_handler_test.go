package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gracechurch/server/internal/models"
)

type recordingRemover struct {
	deleted []string
	fail    map[string]bool
}

func (r *recordingRemover) Delete(assetID string) error {
	r.deleted = append(r.deleted, assetID)
	if r.fail[assetID] {
		return errors.New("remote delete failed")
	}
	return nil
}

func TestRemoveRemoteAssetsDeletesEveryAsset(t *testing.T) {
	remover := &recordingRemover{}
	items := []models.Media{
		{AssetID: "asset-1"},
		{AssetID: "asset-2"},
		{AssetID: "asset-3"},
	}

	removeRemoteAssets(remover, items)

	assert.Equal(t, []string{"asset-1", "asset-2", "asset-3"}, remover.deleted)
}

func TestRemoveRemoteAssetsContinuesPastFailures(t *testing.T) {
	remover := &recordingRemover{fail: map[string]bool{"asset-2": true}}
	items := []models.Media{
		{AssetID: "asset-1"},
		{AssetID: "asset-2"},
		{AssetID: "asset-3"},
	}

	removeRemoteAssets(remover, items)

	// A failed remote delete is logged and skipped, never fatal.
	assert.Equal(t, []string{"asset-1", "asset-2", "asset-3"}, remover.deleted)
}

func TestRemoveRemoteAssetsNilStore(t *testing.T) {
	assert.NotPanics(t, func() {
		removeRemoteAssets(nil, []models.Media{{AssetID: "asset-1"}})
	})
}
