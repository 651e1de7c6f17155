package aws

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"duophone/chat-api/pkg/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Create uploads body under a random object key derived from name and
// returns that key as the blob id. The manager uploader handles bodies of
// unknown length and splits big ones into parts.
func (s *S3Client) Create(ctx context.Context, body io.Reader, name, mimeType string) (string, error) {
	key := util.RandStr(10) + path.Ext(name)

	u := manager.NewUploader(s.C, func(u *manager.Uploader) {
		u.Concurrency = 5
		u.PartSize = 6 << 20
	})

	_, err := u.Upload(ctx, &s3.PutObjectInput{
		Bucket:      s.Bucket,
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to blob store, %w", name, err)
	}

	zap.L().Debug("Blob uploaded", zap.String("key", key), zap.String("type", mimeType))
	return key, nil
}

// GrantPublicRead marks the object world readable through a canned ACL.
func (s *S3Client) GrantPublicRead(ctx context.Context, id string) error {
	_, err := s.C.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: s.Bucket,
		Key:    aws.String(id),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("failed to grant public read on %s, %w", id, err)
	}
	return nil
}

// PublicLink verifies the object exists and returns its public URL built
// from the configured base.
func (s *S3Client) PublicLink(ctx context.Context, id string) (string, error) {
	_, err := s.C.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("failed to stat blob %s, %w", id, err)
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + id, nil
}
