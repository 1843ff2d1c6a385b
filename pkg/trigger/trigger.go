package trigger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

// CallAsync notifies a downstream hook that a record changed by calling
// triggerURL with the record id appended. Failures are logged only.
// done, when non-nil, is closed after the call finishes.
func CallAsync(triggerURL, recordID string, httpClient httpclient.Client, done chan<- struct{}) {
	if triggerURL == "" {
		if done != nil {
			close(done)
		}
		return
	}

	go func() {
		if done != nil {
			defer close(done)
		}
		call(triggerURL+url.QueryEscape(recordID), recordID, httpClient)
	}()
}

func call(targetURL, recordID string, httpClient httpclient.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		logger.Error("Failed to build trigger request",
			zap.Error(err),
			zap.String("url", targetURL))
		return
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to call trigger URL",
			zap.Error(err),
			zap.String("url", targetURL),
			zap.String("record_id", recordID))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.Info("Trigger URL called successfully",
			zap.String("url", targetURL),
			zap.String("record_id", recordID),
			zap.Int("status_code", resp.StatusCode))
		return
	}

	logger.Warn("Trigger URL returned non-success status",
		zap.String("url", targetURL),
		zap.String("record_id", recordID),
		zap.Int("status_code", resp.StatusCode),
		zap.Error(fmt.Errorf("unexpected status %d", resp.StatusCode)))
}
