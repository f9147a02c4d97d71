package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stylemix/internal/lib/logger/sl"
	storage "stylemix/internal/storage/filestorage"

	"github.com/google/uuid"
)

var (
	ErrInvalidImage = errors.New("invalid image payload")
	ErrImageTooBig  = errors.New("image exceeds size limit")
)

// extension by data URL mime subtype; anything else falls back to jpg
var imageExtensions = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"jpg":  "jpg",
	"gif":  "gif",
	"webp": "webp",
}

type MediaService struct {
	log     *slog.Logger
	storage storage.FileStorage
	maxSize int64
}

func NewMediaService(log *slog.Logger, fs storage.FileStorage, maxSize int64) *MediaService {
	return &MediaService{log: log, storage: fs, maxSize: maxSize}
}

// UploadImage decodes a base64 payload (raw or data URL) and stores it under
// the folder, returning the public URL.
func (s *MediaService) UploadImage(ctx context.Context, payload, folder string) (string, error) {
	const op = "media_service.UploadImage"
	log := s.log.With(slog.String("op", op))

	if payload == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidImage)
	}

	ext := "jpg"
	if strings.HasPrefix(payload, "data:image/") {
		rest := strings.TrimPrefix(payload, "data:image/")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidImage)
		}
		if e, ok := imageExtensions[rest[:semi]]; ok {
			ext = e
		}
		payload = rest[semi+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Warn("failed to decode base64 image", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidImage)
	}

	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		log.Warn("image too big", slog.Int("size", len(data)))
		return "", fmt.Errorf("%s: %w", op, ErrImageTooBig)
	}

	if folder == "" {
		folder = "images"
	}
	subPath := fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)

	relPath, err := s.storage.SaveBytes(ctx, data, subPath)
	if err != nil {
		log.Error("failed to save image", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	url := s.storage.BaseURL() + "/" + relPath
	log.Info("image uploaded", slog.String("path", relPath), slog.Int("size", len(data)))

	return url, nil
}
