// Package storage guarda os arquivos do sistema (logos e fotos de vistoria)
// em um serviço compatível com S3.
package storage

import (
	"context"
	"time"
)

// Buckets usados pelo sistema.
const (
	BucketLogos         = "logos"
	BucketVistoriaFotos = "vistoria-fotos"
)

// UploadInput representa uma operação de upload simples.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}

// UploadResult descreve o artefato persistido.
type UploadResult struct {
	URL  string
	ETag string
}

// Uploader define o comportamento para armazenar e referenciar blobs.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
