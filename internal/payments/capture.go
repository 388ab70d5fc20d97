package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"

	"bitbucket.org/crgw/booking-engine/internal/schema"
	"bitbucket.org/crgw/booking-engine/internal/tools/converting"
	"bitbucket.org/crgw/booking-engine/internal/tools/requesting"
)

type captureRequest struct {
	configuration Configuration
	params        CaptureParams
	logger        *zerolog.Logger
}

type captureQuery struct {
	MerchantId     string `url:"merchant_id"`
	IdempotencyKey string `url:"idempotency_key"`
}

type captureRQ struct {
	Token     string        `json:"token"`
	Amount    schema.Amount `json:"amount"`
	Currency  string        `json:"currency"`
	Reference string        `json:"reference"`
}

type captureRS struct {
	Status string `json:"status"`
	Id     string `json:"id"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r captureRS) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}

	return r.Error.Message
}

func (c *captureRequest) Execute(ctx context.Context, httpTransport *http.Transport) (CaptureResponse, error) {
	capture := CaptureResponse{}
	capture.Status = CaptureStatusFailed

	requestsBucket := schema.NewProcessorRequestsBucket()
	errorsBucket := schema.NewErrorsBucket()

	capture.ProcessorRequests = requestsBucket.ProcessorRequests()
	capture.Errors = errorsBucket.Errors()

	client := &http.Client{
		Timeout: time.Duration(c.configuration.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(c.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	response, err := c.makeRequest(ctx, client)
	if err != nil {
		errorsBucket.AddError(*err)
		return capture, nil
	}

	capture.ProcessorReference = converting.PointerToValue(response.Id)

	switch response.Status {
	case "captured":
		capture.Status = CaptureStatusCaptured
	case "declined":
		capture.Status = CaptureStatusDeclined
	default:
		errorsBucket.AddError(schema.NewProcessorError("unknown capture status " + response.Status))
	}

	return capture, nil
}

func (c *captureRequest) makeRequest(ctx context.Context, client *http.Client) (*captureRS, *schema.ProcessorResponseError) {
	body, _ := json.Marshal(captureRQ{
		Token:     c.params.PaymentToken,
		Amount:    c.params.Amount,
		Currency:  c.params.Currency,
		Reference: c.params.BookingReference,
	})

	values, _ := query.Values(captureQuery{
		MerchantId:     c.configuration.MerchantId,
		IdempotencyKey: c.params.BookingReference,
	})

	url := c.configuration.ApiUrl + "/v1/captures?" + values.Encode()
	requestCtx := context.WithValue(ctx, schema.RequestingTypeKey, schema.Capture)

	httpRequest, _ := http.NewRequestWithContext(requestCtx, http.MethodPost, url, bytes.NewBuffer(body))
	httpRequest.Header.Set("Content-Type", "application/json")

	token, signErr := c.bearerToken()
	if signErr != nil {
		e := schema.NewProcessorError(signErr.Error())
		return nil, &e
	}
	httpRequest.Header.Set("Authorization", "Bearer "+token)

	rs, err := requesting.RequestErrors(client.Do(httpRequest))
	if err != nil {
		return nil, err
	}

	bodyBytes, _ := io.ReadAll(rs.Body)
	rs.Body.Close()

	var jsonCaptureResponse captureRS
	jsonErr := json.Unmarshal(bodyBytes, &jsonCaptureResponse)
	if jsonErr != nil {
		e := schema.NewProcessorError("invalid response from payment processor")
		return nil, &e
	}

	if message := jsonCaptureResponse.ErrorMessage(); message != "" {
		e := schema.NewProcessorError(message)
		return nil, &e
	}

	return &jsonCaptureResponse, nil
}

// Captures are authorized with a short-lived merchant token.
func (c *captureRequest) bearerToken() (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    c.configuration.MerchantId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Minute)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.configuration.SigningKey))
}
