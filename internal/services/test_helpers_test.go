package services_test

import (
	"github.com/coachhub/coachhub-api/config"
	"github.com/coachhub/coachhub-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{AppEnv: "development"},
		Payment: config.PaymentConfig{Currency: "inr"},
		Booking: config.BookingConfig{ManualPaymentURL: "/dashboard/userdashboard/userpayment", PendingTTLHours: 24},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
