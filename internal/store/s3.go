package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/valdraft/draftd/internal/models"
)

// S3 keeps the document as a single object in an S3-compatible bucket
// (AWS S3 or MinIO). The object ETag is the revision; conditional writes
// (If-Match / If-None-Match) provide the compare-and-swap.
type S3 struct {
	client *s3.Client
	bucket string
	key    string
}

// S3Config holds explicit construction parameters. Credentials come from
// the default AWS chain.
type S3Config struct {
	Region    string
	Bucket    string
	Key       string
	Endpoint  string // optional, for MinIO
	PathStyle bool
}

// NewS3 builds an S3 store from config.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 store: bucket required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("s3 store: key required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

func (s *S3) Load(ctx context.Context) (*models.LeagueState, Revision, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
	})
	if err != nil {
		return nil, RevisionNone, mapS3Error(err)
	}
	defer out.Body.Close()
	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, RevisionNone, err
	}
	var state models.LeagueState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, RevisionNone, fmt.Errorf("decoding s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return &state, etagRevision(out.ETag), nil
}

func (s *S3) Save(ctx context.Context, state *models.LeagueState, rev Revision) (Revision, error) {
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return RevisionNone, err
	}
	input := &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(encoded),
		ContentType: aws.String("application/json"),
	}
	if rev == RevisionNone {
		input.IfNoneMatch = aws.String("*")
	} else {
		input.IfMatch = aws.String(`"` + string(rev) + `"`)
	}
	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return RevisionNone, mapS3Error(err)
	}
	return etagRevision(out.ETag), nil
}

func (s *S3) Backup(ctx context.Context, state *models.LeagueState, label string) error {
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s.%s-%s.bak", s.key, label, time.Now().UTC().Format("20060102T150405"))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(encoded),
		ContentType: aws.String("application/json"),
	})
	return err
}

func etagRevision(etag *string) Revision {
	if etag == nil {
		return RevisionNone
	}
	return Revision(strings.Trim(*etag, `"`))
}

func mapS3Error(err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return ErrNotFound
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return ErrNotFound
		case "PreconditionFailed", "ConditionalRequestConflict":
			return ErrRevisionMismatch
		}
	}
	return err
}
