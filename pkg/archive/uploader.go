// Package archive pushes finished row logs and their exports to Alibaba
// Cloud OSS. It is never invoked by the writer itself; archiving is an
// explicit post-processing step on a file the writer is done with.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/rowlog/rowlog/pkg/config"
	"github.com/rowlog/rowlog/pkg/logger"
)

// Uploader handles log file uploads to Alibaba Cloud OSS
type Uploader struct {
	bucket *oss.Bucket
	cfg    *config.ArchiveConfig
	logger *logger.Logger
}

// UploadResult contains the result of an upload operation
type UploadResult struct {
	ObjectKey  string
	SignedURL  string
	Size       int64
	UploadTime time.Duration
}

// NewUploader creates a new OSS uploader. Credentials are required here:
// archiving is the one operation that cannot run without them.
func NewUploader(cfg *config.ArchiveConfig, log *logger.Logger) (*Uploader, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("archive endpoint and bucket are required")
	}
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, fmt.Errorf("archive access credentials are required")
	}
	if log == nil {
		log = logger.Discard()
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get OSS bucket: %w", err)
	}

	return &Uploader{bucket: bucket, cfg: cfg, logger: log}, nil
}

// Upload pushes the file at localPath to OSS with bounded linear retry
// and returns a signed download URL for the stored object.
func (u *Uploader) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	start := time.Now()

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	objectKey := objectKeyFor(u.cfg.Prefix, localPath, time.Now())
	slog := u.logger.WithSession("").WithComponent("archive_uploader")
	slog.LogArchiveUploadStarted("Starting archive upload", logger.Fields{
		"object_key": objectKey,
		"file_size":  info.Size(),
		"local_path": localPath,
	})

	var lastErr error
	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * time.Second
			slog.LogWarn("ArchiveUploadRetry",
				fmt.Sprintf("Retrying upload (attempt %d/%d)", attempt+1, u.cfg.MaxRetries+1),
				logger.Fields{"wait_time": wait.String()})
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		lastErr = u.putObject(localPath, objectKey, info.Size())
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		slog.LogArchiveUploadFailed("Archive upload failed after retries", lastErr, logger.Fields{
			"object_key": objectKey,
			"attempts":   u.cfg.MaxRetries + 1,
		})
		return nil, fmt.Errorf("failed to upload after %d attempts: %w", u.cfg.MaxRetries+1, lastErr)
	}

	signedURL, err := u.bucket.SignURL(objectKey, oss.HTTPGet, int64(u.cfg.SignedURLExpiry.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("failed to sign URL: %w", err)
	}

	duration := time.Since(start)
	slog.LogArchiveUploadCompleted("Archive upload completed", logger.Fields{
		"object_key": objectKey,
		"signed_url": signedURL,
		"file_size":  info.Size(),
		"duration":   duration.String(),
	})

	return &UploadResult{
		ObjectKey:  objectKey,
		SignedURL:  signedURL,
		Size:       info.Size(),
		UploadTime: duration,
	}, nil
}

// putObject uses a single PUT for small files and the SDK's multipart
// upload above the configured part size.
func (u *Uploader) putObject(localPath, objectKey string, size int64) error {
	if u.cfg.PartSize > 0 && size > u.cfg.PartSize {
		return u.bucket.UploadFile(objectKey, localPath, u.cfg.PartSize, oss.Routines(3))
	}
	return u.bucket.PutObjectFromFile(objectKey, localPath)
}

// DeleteObject deletes an archived object from OSS
func (u *Uploader) DeleteObject(objectKey string) error {
	return u.bucket.DeleteObject(objectKey)
}

// objectKeyFor builds the object key: prefix, date path, then the local
// file's base name.
func objectKeyFor(prefix, localPath string, now time.Time) string {
	if prefix == "" {
		prefix = "rowlogs"
	}
	return fmt.Sprintf("%s/%s/%s", prefix, now.Format("2006/01/02"), filepath.Base(localPath))
}
