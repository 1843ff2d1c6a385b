// Package apiclient calls the coachhub HTTP API on behalf of a signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coachhub/coachhub-api/internal/models"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 * 1024

// Client reads slots and creates bookings over HTTP
type Client struct {
	baseURL    string
	token      string
	httpClient httpclient.Client
}

// New creates a client for the API at baseURL (e.g. https://api.example.com).
// token is the caller's session JWT, sent as a Bearer token.
func New(baseURL, token string, httpClient httpclient.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewStandardClient()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// ListOpenSlots lists a mentor's unbooked, active slots on a date
func (c *Client) ListOpenSlots(ctx context.Context, mentorID int64, date string) ([]*models.Slot, error) {
	q := url.Values{}
	q.Set("mentor_id", strconv.FormatInt(mentorID, 10))
	q.Set("date", date)
	q.Set("is_booked", "0")
	q.Set("is_active", "1")

	var slots []*models.Slot
	if err := c.do(ctx, http.MethodGet, "/api/v1/slots?"+q.Encode(), nil, &slots, "fetch available slots"); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateBooking reserves a slot
func (c *Client) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	var resp models.CreateBookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings", req, &resp, "create booking"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, operation string) error {
	start := time.Now()

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		logger.LogAPICall(ctx, "coachhub_api", operation, "error", duration, zap.Error(err))
		return apperrors.TransportError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.LogAPICall(ctx, "coachhub_api", operation, "error", duration,
			zap.Int("status_code", resp.StatusCode))
		return statusError(operation, resp)
	}

	logger.LogAPICall(ctx, "coachhub_api", operation, "success", duration,
		zap.Int("status_code", resp.StatusCode))

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.TransportError(operation, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// statusError turns an API error response back into the matching domain error
func statusError(operation string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &payload)
	msg := payload.Error

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if msg == "" {
			msg = "Invalid request"
		}
		return apperrors.ValidationError(msg)
	case http.StatusUnauthorized:
		return apperrors.AuthRequiredError(msg)
	case http.StatusForbidden:
		return apperrors.AccessDeniedError(msg)
	case http.StatusConflict:
		return apperrors.SlotUnavailableError(msg)
	}
	return apperrors.TransportError(operation, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg))
}
