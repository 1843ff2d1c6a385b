// Command booksession books a coaching session through the public API:
// it looks up the coach's open slots, books the one at the requested time
// and prints where to go next.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coachhub/coachhub-api/internal/booking"
	"github.com/coachhub/coachhub-api/internal/pending"
	"github.com/coachhub/coachhub-api/pkg/apiclient"
	apperrors "github.com/coachhub/coachhub-api/pkg/errors"
	"github.com/coachhub/coachhub-api/pkg/httpclient"
	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type options struct {
	APIURL           string
	Token            string
	UserID           int64
	MentorID         int64
	Date             string
	Time             string
	SessionType      booking.SessionType
	RedisURL         string
	MarkerDir        string
	ManualPaymentURL string
	Timeout          time.Duration
	LogLevel         string
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "booksession: %v\n", err)
		os.Exit(2)
	}

	if err := logger.Initialize(logger.Config{
		Level:       opts.LogLevel,
		Environment: "development",
		ServiceName: "coachhub-booksession",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		msg := apperrors.Reason(err)
		if msg == "" {
			msg = err.Error()
		}
		logger.Error("Booking failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	markers, err := markerStore(opts)
	if err != nil {
		return err
	}

	api := apiclient.New(opts.APIURL, opts.Token, httpclient.NewClientWithTimeout(opts.Timeout))
	orchestrator := booking.NewOrchestrator(api, api, markers, opts.ManualPaymentURL)

	outcome, err := orchestrator.BookSession(ctx, booking.Request{
		UserID:      opts.UserID,
		MentorID:    opts.MentorID,
		Date:        opts.Date,
		Time:        opts.Time,
		SessionType: opts.SessionType,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	result := map[string]any{
		"booking_id":   outcome.BookingID,
		"next":         outcome.Next,
		"redirect_url": outcome.RedirectURL,
		"message":      outcome.Message,
	}
	if outcome.OrderID != "" {
		result["order_id"] = outcome.OrderID
	}
	return enc.Encode(result)
}

// markerStore shares markers with the API when it points at the same Redis,
// and otherwise keeps them on disk so a later run can read them back
func markerStore(opts *options) (pending.Store, error) {
	if opts.RedisURL != "" {
		client, err := pending.NewRedisClient(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return pending.NewRedisStore(client, pending.DefaultTTL), nil
	}

	dir := opts.MarkerDir
	if dir == "" {
		var err error
		if dir, err = pending.DefaultFileDir(); err != nil {
			return nil, err
		}
	}
	return pending.NewFileStore(dir, pending.DefaultTTL)
}

// parseOptions reads flags, falling back to COACHHUB_* environment variables
func parseOptions(args []string) (*options, error) {
	fs := pflag.NewFlagSet("booksession", pflag.ContinueOnError)
	fs.String("api-url", "http://localhost:8001", "base URL of the CoachHub API")
	fs.String("token", "", "session token (JWT) of the booking user")
	fs.Int64("user-id", 0, "id of the booking user")
	fs.Int64("mentor-id", 0, "id of the coach")
	fs.String("date", "", "session date, YYYY-MM-DD")
	fs.String("time", "", "session start time, HH:MM")
	fs.String("session-type", "standard", "quick, standard or extended")
	fs.String("redis-url", "", "Redis URL for the pending-booking marker")
	fs.String("marker-dir", "", "directory for the pending-booking marker when Redis is not used (default <user config dir>/coachhub/pendingBooking)")
	fs.String("manual-payment-url", "/dashboard/userdashboard/userpayment", "view to open when no checkout was started")
	fs.Duration("timeout", httpclient.DefaultTimeout, "per-request timeout")
	fs.String("log-level", "warn", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("COACHHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	sessionType, err := booking.ParseSessionType(v.GetString("session-type"))
	if err != nil {
		return nil, err
	}

	opts := &options{
		APIURL:           v.GetString("api-url"),
		Token:            v.GetString("token"),
		UserID:           v.GetInt64("user-id"),
		MentorID:         v.GetInt64("mentor-id"),
		Date:             v.GetString("date"),
		Time:             v.GetString("time"),
		SessionType:      sessionType,
		RedisURL:         v.GetString("redis-url"),
		MarkerDir:        v.GetString("marker-dir"),
		ManualPaymentURL: v.GetString("manual-payment-url"),
		Timeout:          v.GetDuration("timeout"),
		LogLevel:         v.GetString("log-level"),
	}

	if opts.MentorID <= 0 {
		return nil, fmt.Errorf("--mentor-id is required")
	}
	return opts, nil
}
