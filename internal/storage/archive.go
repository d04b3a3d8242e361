package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive stores raw AEMO zip bundles in S3 (or an S3-compatible store)
// for replay and audit, keyed by report family and settlement timestamp.
// Disabled entirely (Put becomes a no-op) when no bucket is configured,
// since the archive tier is optional per spec.md §6.
//
// Grounding note: none of the pack's retrieved repos carry a complete S3
// client implementation (the teacher references an R2Client but its
// defining file wasn't part of the pack), so this wraps aws-sdk-go-v2's
// documented manager.Uploader directly rather than imitating teacher code.
type Archive struct {
	client *s3.Client
	bucket string
}

// NewArchive builds an Archive for bucket in region. An empty bucket
// disables archival; Put becomes a no-op and Get always reports not-found.
func NewArchive(ctx context.Context, bucket, region string) (*Archive, error) {
	if bucket == "" {
		return &Archive{}, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Archive{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Enabled reports whether archival is configured.
func (a *Archive) Enabled() bool { return a.client != nil }

// Put uploads the raw zip bytes for one ingested bundle under
// <family>/<settlementKey>.zip.
func (a *Archive) Put(ctx context.Context, family, settlementKey string, data []byte) error {
	if !a.Enabled() {
		return nil
	}
	uploader := manager.NewUploader(a.client)
	key := fmt.Sprintf("%s/%s.zip", family, settlementKey)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("archive upload %s: %w", key, err)
	}
	return nil
}

// Get retrieves a previously archived bundle, returning (nil, false) when
// archival is disabled or the object doesn't exist.
func (a *Archive) Get(ctx context.Context, family, settlementKey string) ([]byte, bool, error) {
	if !a.Enabled() {
		return nil, false, nil
	}
	key := fmt.Sprintf("%s/%s.zip", family, settlementKey)
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, false, nil
	}
	defer out.Body.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return nil, false, fmt.Errorf("read archived object %s: %w", key, err)
	}
	return buf.Bytes(), true, nil
}
