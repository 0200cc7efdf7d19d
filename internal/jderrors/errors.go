// Package jderrors defines the closed error-code set of the preprocessing
// worker and the ProcessingError type every pipeline failure is wrapped into.
package jderrors

import (
	"errors"
	"fmt"
)

// Code is a stable error identifier published on fail events.
type Code string

const (
	// Message parsing
	CodeMsgParseJSON    Code = "MSG_PARSE_001" // value is not valid JSON
	CodeMsgParseMissing Code = "MSG_PARSE_002" // required field missing

	// OCR pipeline
	CodeOcrExtract Code = "PIPELINE_OCR_001" // low confidence / no text
	CodeOcrDecode  Code = "PIPELINE_OCR_002" // image decode failure

	// TEXT pipeline
	CodeTextPipeline Code = "PIPELINE_TEXT_001"

	// URL pipeline
	CodeURLFetch Code = "PIPELINE_URL_001"
	CodeURLParse Code = "PIPELINE_URL_002"

	// Infrastructure
	CodeKafkaProduce Code = "INFRA_KAFKA_001"
	CodeBackupWrite  Code = "INFRA_STORAGE_001"

	CodeUnknown Code = "UNKNOWN_001"
)

// Category hints at whether a retry upstream could help. The preprocessor
// itself never retries.
type Category string

const (
	CategoryRecoverable Category = "RECOVERABLE"
	CategoryPermanent   Category = "PERMANENT"
	CategoryUnknown     Category = "UNKNOWN"
)

var categories = map[Code]Category{
	CodeMsgParseJSON:    CategoryPermanent,
	CodeMsgParseMissing: CategoryPermanent,
	CodeOcrExtract:      CategoryPermanent,
	CodeOcrDecode:       CategoryPermanent,
	CodeTextPipeline:    CategoryPermanent,
	CodeURLFetch:        CategoryRecoverable, // transient network failure
	CodeURLParse:        CategoryPermanent,
	CodeKafkaProduce:    CategoryRecoverable,
	CodeBackupWrite:     CategoryRecoverable,
	CodeUnknown:         CategoryUnknown,
}

// CategoryOf maps a code to its retry-hint category.
func CategoryOf(code Code) Category {
	if c, ok := categories[code]; ok {
		return c
	}
	return CategoryUnknown
}

// ProcessingError is the single domain error of the worker. Every pipeline
// failure reaching the worker boundary is one of these; anything else is
// wrapped as CodeUnknown.
type ProcessingError struct {
	Code    Code
	Stage   string
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ProcessingError) Unwrap() error { return e.Cause }

// Category returns the retry-hint category of the error's code.
func (e *ProcessingError) Category() Category { return CategoryOf(e.Code) }

// New builds a ProcessingError without a cause.
func New(code Code, stage, message string) *ProcessingError {
	return &ProcessingError{Code: code, Stage: stage, Message: message}
}

// Wrap builds a ProcessingError around an underlying cause.
func Wrap(code Code, stage, message string, cause error) *ProcessingError {
	return &ProcessingError{Code: code, Stage: stage, Message: message, Cause: cause}
}

// AsProcessing extracts a ProcessingError from err. When err is not one, a
// CodeUnknown error tagged with stage is returned so callers always have a
// publishable code.
func AsProcessing(err error, stage string) *ProcessingError {
	var perr *ProcessingError
	if errors.As(err, &perr) {
		return perr
	}
	return Wrap(CodeUnknown, stage, err.Error(), err)
}
