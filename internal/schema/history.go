package schema

import (
	"net/http"
	"os"
	"sync"
	"time"

	"bitbucket.org/crgw/booking-engine/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

type ProcessorRequestName string

const (
	Capture ProcessorRequestName = "capture"
	Refund  ProcessorRequestName = "refund"
)

type RequestContent struct {
	Url     *string                 `json:"url,omitempty"`
	Method  *string                 `json:"method,omitempty"`
	Body    *string                 `json:"body,omitempty"`
	Headers *map[string]interface{} `json:"headers,omitempty"`
}

type ResponseContent struct {
	StatusCode *int                    `json:"statusCode,omitempty"`
	Headers    *map[string]interface{} `json:"headers,omitempty"`
	Body       *string                 `json:"body,omitempty"`
}

// ProcessorRequest is one recorded call to the payment processor, echoed in
// the booking response for auditability.
type ProcessorRequest struct {
	Name            *ProcessorRequestName `json:"name,omitempty"`
	RequestContent  *RequestContent       `json:"requestContent,omitempty"`
	ResponseContent *ResponseContent      `json:"responseContent,omitempty"`
	Duration        *int                  `json:"duration,omitempty"`
	StartDateTime   *time.Time            `json:"startDateTime,omitempty"`
}

type ProcessorRequests []ProcessorRequest

type processorRequestsBucket struct {
	processorRequests ProcessorRequests
	sync.Mutex
}

func NewProcessorRequestsBucket() processorRequestsBucket {
	return processorRequestsBucket{
		processorRequests: []ProcessorRequest{},
	}
}

func (r *processorRequestsBucket) ProcessorRequests() *ProcessorRequests {
	return &r.processorRequests
}

func (r *processorRequestsBucket) AddRequests(requests ProcessorRequests) {
	r.Lock()
	r.processorRequests = append(r.processorRequests, requests...)
	r.Unlock()
}

func (r *processorRequestsBucket) FinishedRequest(
	requestType ProcessorRequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	reqHeaders := converting.ConvertMap(requestHeaders)

	req := RequestContent{
		Url:     &url,
		Method:  &method,
		Body:    &requestBody,
		Headers: &reqHeaders,
	}

	historyRequest := ProcessorRequest{
		Name:           &requestType,
		RequestContent: &req,
	}

	resHeaders := converting.ConvertMap(responseHeaders)

	res := ResponseContent{
		StatusCode: &statusCode,
		Headers:    &resHeaders,
		Body:       &responseBody,
	}

	historyRequest.ResponseContent = &res

	if os.Getenv("TEST") != "true" {
		duration := int(time.Since(startTime).Milliseconds())
		historyRequest.Duration = &duration
		historyRequest.StartDateTime = &startTime
	}

	r.Lock()
	r.processorRequests = append(r.processorRequests, historyRequest)
	r.Unlock()
}
