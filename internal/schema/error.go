package schema

import (
	"sync"
)

type ProcessorErrorCode string

const (
	ProcessorError  ProcessorErrorCode = "PROCESSOR_ERROR"
	TimeoutError    ProcessorErrorCode = "TIMEOUT_ERROR"
	ConnectionError ProcessorErrorCode = "CONNECTION_ERROR"
)

type ProcessorResponseError struct {
	Code    ProcessorErrorCode `json:"code"`
	Message string             `json:"message"`
}

type ProcessorResponseErrors []ProcessorResponseError

type errorsBucket struct {
	errors ProcessorResponseErrors
	sync.Mutex
}

func NewErrorsBucket() errorsBucket {
	return errorsBucket{
		errors: []ProcessorResponseError{},
	}
}

func (e *errorsBucket) AddErrors(errors []ProcessorResponseError) {
	e.Lock()
	e.errors = append(e.errors, errors...)
	e.Unlock()
}

func (e *errorsBucket) AddError(err ProcessorResponseError) {
	e.Lock()
	e.errors = append(e.errors, err)
	e.Unlock()
}

func (e *errorsBucket) Errors() *ProcessorResponseErrors {
	return &e.errors
}

func NewProcessorError(msg string) ProcessorResponseError {
	return ProcessorResponseError{
		Code:    ProcessorError,
		Message: msg,
	}
}

func NewTimeoutError(msg string) ProcessorResponseError {
	return ProcessorResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) ProcessorResponseError {
	return ProcessorResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}
