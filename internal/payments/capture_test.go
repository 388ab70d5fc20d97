package payments_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bitbucket.org/crgw/booking-engine/internal/payments"
	"bitbucket.org/crgw/booking-engine/internal/schema"
)

func captureConfiguration(url string) payments.Configuration {
	return payments.Configuration{
		ApiUrl:     url,
		MerchantId: "merchant-1",
		SigningKey: "test-signing-key",
		TimeoutMs:  8000,
	}
}

func captureParamsTemplate() payments.CaptureParams {
	return payments.CaptureParams{
		PaymentToken:     "tok_123",
		Amount:           33000,
		Currency:         "EUR",
		BookingReference: "bk-42",
	}
}

func TestCapture(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should build the capture request", func(t *testing.T) {
		handlerFuncCalled := false

		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalled = true

			assert.Equal(t, "/v1/captures", r.URL.Path)
			assert.Equal(t, "merchant-1", r.URL.Query().Get("merchant_id"))
			assert.Equal(t, "bk-42", r.URL.Query().Get("idempotency_key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			token, parseErr := jwt.ParseWithClaims(
				r.Header.Get("Authorization")[len("Bearer "):],
				&jwt.RegisteredClaims{},
				func(token *jwt.Token) (interface{}, error) {
					return []byte("test-signing-key"), nil
				},
			)
			assert.Nil(t, parseErr)
			assert.Equal(t, "merchant-1", token.Claims.(*jwt.RegisteredClaims).Issuer)

			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(
				t,
				`{"token":"tok_123","amount":33000,"currency":"EUR","reference":"bk-42"}`,
				string(body),
			)

			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "captured", "id": "cap_9"})
		}))
		defer testServer.Close()

		client := payments.New(captureConfiguration(testServer.URL))
		response, err := client.Capture(context.TODO(), captureParamsTemplate(), &log)

		assert.Nil(t, err)
		assert.True(t, handlerFuncCalled)
		assert.Equal(t, payments.CaptureStatusCaptured, response.Status)
		assert.Equal(t, "cap_9", *response.ProcessorReference)
		assert.Len(t, *response.ProcessorRequests, 1)
		assert.Empty(t, *response.Errors)
	})

	t.Run("should report a decline", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "declined", "id": "cap_10"})
		}))
		defer testServer.Close()

		client := payments.New(captureConfiguration(testServer.URL))
		response, err := client.Capture(context.TODO(), captureParamsTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, payments.CaptureStatusDeclined, response.Status)
	})

	t.Run("should handle status != 200 from the processor", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer testServer.Close()

		client := payments.New(captureConfiguration(testServer.URL))
		response, err := client.Capture(context.TODO(), captureParamsTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, payments.CaptureStatusFailed, response.Status)
		assert.Len(t, *response.Errors, 1)
		assert.Equal(t, schema.ProcessorError, (*response.Errors)[0].Code)
		assert.Equal(t, "payment processor returned status code 502", (*response.Errors)[0].Message)
	})

	t.Run("should handle a processor error payload", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"error":{"message":"token expired"}}`))
		}))
		defer testServer.Close()

		client := payments.New(captureConfiguration(testServer.URL))
		response, err := client.Capture(context.TODO(), captureParamsTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, payments.CaptureStatusFailed, response.Status)
		assert.Equal(t, "token expired", (*response.Errors)[0].Message)
	})

	t.Run("should handle a timeout", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(10 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer testServer.Close()

		configuration := captureConfiguration(testServer.URL)
		configuration.TimeoutMs = 1

		client := payments.New(configuration)
		response, err := client.Capture(context.TODO(), captureParamsTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, payments.CaptureStatusFailed, response.Status)
		assert.Equal(t, schema.TimeoutError, (*response.Errors)[0].Code)
	})
}
