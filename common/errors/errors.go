/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorType string

const (
	ErrorTypeNotFound    ErrorType = "NotFound"
	ErrorTypeServerError ErrorType = "ServerError"
	ErrorTypeConflict    ErrorType = "Conflict"
	ErrorTypeBadRequest  ErrorType = "BadRequest"
	ErrorTypeMandatory   ErrorType = "Mandatory"
	ErrorTypeUnknown     ErrorType = "Unknown"
	ErrorTypeConfig      ErrorType = "ConfigurationError"
	ErrorTypeSensor      ErrorType = "SensorError"
	ErrorTypeInference   ErrorType = "InferenceError"
	ErrorTypeDelivery    ErrorType = "DeliveryError"
	QueueLimitExceeded   ErrorType = "QueueLimitExceeded"
)

type CommonPremonitorError struct {
	errorType ErrorType
	message   string
}

type PremonitorError interface {
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	Error() string
	ConvertToHTTPError() *echo.HTTPError
}

func (h CommonPremonitorError) ErrorType() ErrorType {
	return h.errorType
}

func (h CommonPremonitorError) Message() string {
	return h.message
}

func (h CommonPremonitorError) Error() string {
	return h.message
}

func (h CommonPremonitorError) IsErrorType(errorType ErrorType) bool {
	return errorType == h.errorType
}

func (h CommonPremonitorError) ConvertToHTTPError() *echo.HTTPError {
	return echo.NewHTTPError(errorTypeToCode(h.ErrorType()), h.Message())
}

func NewCommonPremonitorError(errorType ErrorType, message string) CommonPremonitorError {
	return CommonPremonitorError{errorType, message}
}

func errorTypeToCode(status ErrorType) int {
	switch status {
	case ErrorTypeServerError:
		return http.StatusInternalServerError
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeBadRequest, ErrorTypeMandatory:
		return http.StatusBadRequest
	case ErrorTypeSensor, ErrorTypeInference, ErrorTypeDelivery, ErrorTypeUnknown, QueueLimitExceeded:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
