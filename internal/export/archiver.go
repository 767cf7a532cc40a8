package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

// S3API is the subset of the S3 client used by Archiver.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver keeps a copy of every generated export in S3.
type Archiver struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
}

// NewArchiver creates an Archiver. If bucket is empty, Archive is a no-op.
func NewArchiver(s3Client S3API, bucket string, logger *logging.Logger) *Archiver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Archiver{bucket: bucket, s3Client: s3Client, logger: logger}
}

// Enabled returns true if archival is configured.
func (a *Archiver) Enabled() bool {
	return a != nil && a.bucket != "" && a.s3Client != nil
}

// Archive uploads f under exports/yyyy/mm/dd/ and returns the object key.
func (a *Archiver) Archive(ctx context.Context, f File, at time.Time) (string, error) {
	if !a.Enabled() {
		return "", nil
	}
	at = at.UTC()
	key := fmt.Sprintf("exports/%d/%02d/%02d/%s", at.Year(), at.Month(), at.Day(), f.Name)

	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(f.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("export: s3 put %s: %w", key, err)
	}
	a.logger.Info("archived export to S3", "s3_key", key, "bytes", len(f.Data))
	return key, nil
}
