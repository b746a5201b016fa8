package infra

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"posbuddy/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReciboStore persists rendered receipts and returns where they were written.
type ReciboStore interface {
	Guardar(ctx context.Context, nombre string, pdf []byte) (string, error)
}

// NewReciboStore picks the S3 store when a bucket is configured, local disk otherwise.
func NewReciboStore(ctx context.Context, cfg *config.Config) (ReciboStore, error) {
	if cfg.RecibosS3Bucket == "" {
		return NewLocalReciboStore(cfg.RecibosPath), nil
	}
	return NewS3ReciboStore(ctx, cfg)
}

// ── Disco local ───────────────────────────────────────────────────────────────

type LocalReciboStore struct{ dir string }

func NewLocalReciboStore(dir string) *LocalReciboStore { return &LocalReciboStore{dir: dir} }

func (s *LocalReciboStore) Guardar(_ context.Context, nombre string, pdf []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("recibos: crear directorio: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(nombre))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("recibos: escribir: %w", err)
	}
	return path, nil
}

// ── S3 / R2 ───────────────────────────────────────────────────────────────────

type S3ReciboStore struct {
	client *s3.Client
	bucket string
}

func NewS3ReciboStore(ctx context.Context, cfg *config.Config) (*S3ReciboStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RecibosS3AccessKey,
			cfg.RecibosS3SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.RecibosS3Region),
	)
	if err != nil {
		return nil, fmt.Errorf("recibos: configurar S3: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.RecibosS3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.RecibosS3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3ReciboStore{client: client, bucket: cfg.RecibosS3Bucket}, nil
}

func (s *S3ReciboStore) Guardar(ctx context.Context, nombre string, pdf []byte) (string, error) {
	key := "recibos/" + filepath.Base(nombre)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("recibos: subir a S3: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
