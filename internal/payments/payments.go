// Package payments talks to the external payment-capture processor. Capture
// failures come back as data on the response, the way the booking endpoint
// reports them, not as transport errors.
package payments

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

const defaultTimeoutMs = 8000

type Configuration struct {
	ApiUrl     string
	MerchantId string
	SigningKey string
	TimeoutMs  int
}

func ConfigurationFromEnv() Configuration {
	timeout := defaultTimeoutMs
	if raw := os.Getenv("PAYMENT_TIMEOUT_MS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return Configuration{
		ApiUrl:     os.Getenv("PAYMENT_API_URL"),
		MerchantId: os.Getenv("PAYMENT_MERCHANT_ID"),
		SigningKey: os.Getenv("PAYMENT_SIGNING_KEY"),
		TimeoutMs:  timeout,
	}
}

type CaptureStatus string

const (
	CaptureStatusCaptured CaptureStatus = "CAPTURED"
	CaptureStatusDeclined CaptureStatus = "DECLINED"
	CaptureStatusFailed   CaptureStatus = "FAILED"
)

type CaptureParams struct {
	PaymentToken     string
	Amount           schema.Amount
	Currency         string
	BookingReference string
}

type CaptureResponse struct {
	Status             CaptureStatus
	ProcessorReference *string
	ProcessorRequests  *schema.ProcessorRequests
	Errors             *schema.ProcessorResponseErrors
}

type Processor interface {
	Capture(ctx context.Context, params CaptureParams, logger *zerolog.Logger) (CaptureResponse, error)
}

type Client struct {
	configuration Configuration
	httpTransport *http.Transport
}

func (c *Client) Capture(ctx context.Context, params CaptureParams, logger *zerolog.Logger) (CaptureResponse, error) {
	captureRequest := captureRequest{
		configuration: c.configuration,
		params:        params,
		logger:        logger,
	}

	return captureRequest.Execute(ctx, c.httpTransport)
}

func New(configuration Configuration) *Client {
	transport := http.DefaultTransport.(*http.Transport)
	// improves durations a lot
	transport.DisableKeepAlives = true

	return &Client{
		configuration: configuration,
		httpTransport: transport,
	}
}
