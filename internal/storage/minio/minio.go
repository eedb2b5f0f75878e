// minio — хранилище кэшированных аватаров на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// avatars.go — загрузка изображения и сборка публичной ссылки.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/rfd-tracker/internal/config"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// AvatarsStorage — адаптер MinIO для аватаров.
type AvatarsStorage struct {
	s3      config.S3Config
	maxSize int64
	client  *mclient.Client
	// baseURL — префикс публичных ссылок: PublicBaseURL или <endpoint>/<bucket>.
	baseURL string
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg *config.Config) (*AvatarsStorage, error) {
	const op = "storage.minio.New"

	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	scheme := "http"

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}
	if secure {
		scheme = "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	base := strings.TrimRight(cfg.S3.PublicBaseURL, "/")
	if base == "" {
		base = scheme + "://" + endpoint + "/" + cfg.S3.Bucket
	}

	return &AvatarsStorage{
		s3:      cfg.S3,
		maxSize: cfg.Avatar.MaxSizeBytes,
		client:  client,
		baseURL: base,
	}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Avatars = (*AvatarsStorage)(nil)
