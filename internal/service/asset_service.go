package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "github.com/n23dcpt085-cyber/social-media-website/configs"
)

// Media files the publishers can work with: Graph and TikTok both pull media
// from a public URL, so anything stored here must be one of these.
var allowedAssetTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

type s3PutClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AssetService stores media bytes in Cloudflare R2 and hands back the public
// URL callers then use as a media_urls entry.
type AssetService struct {
	config *cfg.Config
	client s3PutClient
}

func NewAssetService(config *cfg.Config) *AssetService {
	return &AssetService{config: config}
}

func (s *AssetService) r2Client(ctx context.Context) (s3PutClient, error) {
	if s.client != nil {
		return s.client, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	})
	return s.client, nil
}

// Upload sniffs the file content, rejects anything outside the allow-list and
// stores it under a fresh object key. Returns the public URL of the object.
func (s *AssetService) Upload(ctx context.Context, file []byte) (string, error) {
	fileType, err := filetype.Match(file)
	if err != nil || fileType == types.Unknown {
		return "", fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedAssetTypes[fileType.Extension]; !ok {
		return "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	client, err := s.r2Client(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(fileType.MIME.Value),
	})
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.config.R2.PublicURL, key), nil
}
