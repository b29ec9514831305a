// Package s3 implements the artifact store on AWS S3.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"paperbridge/internal/config"
	"paperbridge/internal/domain"
	"paperbridge/internal/port"
)

const contentTypePDF = "application/pdf"

type s3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

// NewStore creates a new S3-backed ArtifactStore implementation.
func NewStore(cfg *config.S3Config) (port.ArtifactStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
	}, nil
}

func (s *s3Store) SaveOriginal(ctx context.Context, externalID string, data []byte) (string, error) {
	return s.put(ctx, originalKey(externalID), data)
}

func (s *s3Store) HasOriginal(ctx context.Context, externalID string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(originalKey(externalID)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("s3 head %s: %w: %v", externalID, domain.ErrLocalIO, err)
	}
	return true, nil
}

func (s *s3Store) SaveArchive(ctx context.Context, documentID int, data []byte) (string, error) {
	return s.put(ctx, "archive/"+strconv.Itoa(documentID)+".pdf", data)
}

func (s *s3Store) put(ctx context.Context, key string, data []byte) (string, error) {
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypePDF),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w: %v", key, domain.ErrLocalIO, err)
	}
	return result.Location, nil
}

func originalKey(externalID string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return "originals/" + replacer.Replace(externalID) + ".pdf"
}
