package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/coachhub/coachhub-api/pkg/retry"
	"go.uber.org/zap"
)

// MaxResumeSize is the largest resume accepted for upload (5MB)
const MaxResumeSize = 5 * 1024 * 1024

var resumeContentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Uploader stores objects and returns their keys
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// objectPutter is the subset of the S3 client used here
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client is an S3-compatible object storage client
type Client struct {
	s3Client   objectPutter
	bucketName string
	endpoint   string
	retryCfg   retry.Config
}

var _ Uploader = (*Client)(nil)

// NewClient creates a storage client. Endpoint is optional for AWS S3 itself.
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) *Client {
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3.New(opts),
		bucketName: bucketName,
		endpoint:   endpoint,
		retryCfg:   retry.StorageConfig(),
	}
}

// Upload puts data under key, retrying transient failures
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	operation := "putObject"

	err := retry.Do(ctx, c.retryCfg, "storage."+operation, func() error {
		_, putErr := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return putErr
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return key, nil
}

// ValidateResume checks the content type and size of a resume upload
func ValidateResume(contentType string, size int64) error {
	if _, ok := resumeContentTypes[normalizeContentType(contentType)]; !ok {
		return fmt.Errorf("invalid file type: %s. Allowed types: pdf, doc, docx", contentType)
	}
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxResumeSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, MaxResumeSize)
	}
	return nil
}

// ResumeKey builds the object key for a user's resume: resumes/<userID>-<slug><ext>
func ResumeKey(userID int64, slugName, contentType string) string {
	name := fmt.Sprintf("%d", userID)
	if slugName != "" {
		name += "-" + slugName
	}
	return path.Join("resumes", name+resumeContentTypes[normalizeContentType(contentType)])
}

func normalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
