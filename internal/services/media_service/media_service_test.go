package services

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storage "stylemix/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMediaService(t *testing.T, maxSize int64) (*MediaService, string) {
	t.Helper()

	dir := t.TempDir()
	fs, err := storage.NewLocalFileStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	return NewMediaService(slog.Default(), fs, maxSize), dir
}

func TestUploadImage_DataURL(t *testing.T) {
	svc, dir := newTestMediaService(t, 0)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	url, err := svc.UploadImage(context.Background(), payload, "avatars")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	matches, err := filepath.Glob(filepath.Join(dir, "avatars", "*.png"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestUploadImage_RawBase64DefaultsToJPG(t *testing.T) {
	svc, _ := newTestMediaService(t, 0)

	payload := base64.StdEncoding.EncodeToString([]byte("raw"))

	url, err := svc.UploadImage(context.Background(), payload, "")
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/images/")
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestUploadImage_Rejections(t *testing.T) {
	svc, _ := newTestMediaService(t, 8)
	ctx := context.Background()

	t.Run("empty payload", func(t *testing.T) {
		_, err := svc.UploadImage(ctx, "", "avatars")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("bad base64", func(t *testing.T) {
		_, err := svc.UploadImage(ctx, "%%%not-base64%%%", "avatars")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("data url without base64 marker", func(t *testing.T) {
		_, err := svc.UploadImage(ctx, "data:image/png,plain", "avatars")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("over size limit", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("way more than eight bytes"))
		_, err := svc.UploadImage(ctx, payload, "avatars")
		assert.ErrorIs(t, err, ErrImageTooBig)
	})
}

func TestUploadImage_UnknownSubtypeFallsBackToJPG(t *testing.T) {
	svc, _ := newTestMediaService(t, 0)

	payload := "data:image/tiff;base64," + base64.StdEncoding.EncodeToString([]byte("tiff"))

	url, err := svc.UploadImage(context.Background(), payload, "avatars")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}
