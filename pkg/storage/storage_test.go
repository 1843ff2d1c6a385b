package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/coachhub/coachhub-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	failures int
	calls    int
	lastKey  string
	lastBody []byte
	lastType string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	f.lastKey = aws.ToString(in.Key)
	f.lastType = aws.ToString(in.ContentType)
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.lastBody = body
	return &s3.PutObjectOutput{}, nil
}

func testClient(putter objectPutter) *Client {
	cfg := retry.StorageConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return &Client{s3Client: putter, bucketName: "resumes-bucket", retryCfg: cfg}
}

func TestUpload_RetriesTransientFailure(t *testing.T) {
	putter := &fakePutter{failures: 1}
	client := testClient(putter)

	key, err := client.Upload(context.Background(), "resumes/7-asha.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "resumes/7-asha.pdf", key)
	assert.Equal(t, 2, putter.calls)
	assert.Equal(t, []byte("%PDF"), putter.lastBody)
	assert.Equal(t, "application/pdf", putter.lastType)
}

func TestUpload_FailsAfterRetries(t *testing.T) {
	putter := &fakePutter{failures: 10}
	client := testClient(putter)

	_, err := client.Upload(context.Background(), "resumes/7.pdf", "application/pdf", []byte("x"))
	assert.Error(t, err)
	assert.Equal(t, 4, putter.calls)
}

func TestValidateResume(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"pdf", "application/pdf", 1024, false},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, false},
		{"doc with params", "Application/MSWord; charset=binary", 1024, false},
		{"image rejected", "image/png", 1024, true},
		{"empty file", "application/pdf", 0, true},
		{"too large", "application/pdf", MaxResumeSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume(tt.contentType, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResumeKey(t *testing.T) {
	assert.Equal(t, "resumes/7-asha-rao-cv.pdf", ResumeKey(7, "asha-rao-cv", "application/pdf"))
	assert.Equal(t, "resumes/9.doc", ResumeKey(9, "", "application/msword"))
}
