package storage

import (
	"context"
	"errors"
	"time"
)

// NoopUploader devolve erro indicando que não há backend configurado. Entra
// no lugar do S3 quando as credenciais não foram definidas no ambiente.
type NoopUploader struct{}

func (NoopUploader) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	return nil, errors.New("storage: uploader não configurado")
}

func (NoopUploader) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	return "", errors.New("storage: uploader não configurado")
}
