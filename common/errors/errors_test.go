package errors

import (
	"net/http"
	"reflect"
	"testing"
)

func TestPremonitorError_Error(t *testing.T) {
	type fields struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name: "errorType and message is filled out", fields: fields{errorType: ErrorTypeSensor, message: "error message"}, want: "error message",
		},
		{
			name: "message is empty", fields: fields{errorType: ErrorTypeSensor, message: ""}, want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CommonPremonitorError{
				errorType: tt.fields.errorType,
				message:   tt.fields.message,
			}
			if got := h.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPremonitorError(t *testing.T) {
	type args struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name string
		args args
		want CommonPremonitorError
	}{
		{
			name: "error type and message are filled out",
			args: args{errorType: ErrorTypeConflict, message: "error message"},
			want: CommonPremonitorError{errorType: ErrorTypeConflict, message: "error message"},
		},
		{
			name: "message is empty",
			args: args{errorType: ErrorTypeConflict, message: ""},
			want: CommonPremonitorError{errorType: ErrorTypeConflict, message: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCommonPremonitorError(tt.args.errorType, tt.args.message); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewCommonPremonitorError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPremonitorError_ConvertToHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		wantCode  int
	}{
		{name: "not found", errorType: ErrorTypeNotFound, wantCode: http.StatusNotFound},
		{name: "bad request", errorType: ErrorTypeBadRequest, wantCode: http.StatusBadRequest},
		{name: "sensor error", errorType: ErrorTypeSensor, wantCode: http.StatusInternalServerError},
		{name: "queue limit", errorType: QueueLimitExceeded, wantCode: http.StatusInternalServerError},
		{name: "config error falls through", errorType: ErrorTypeConfig, wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := NewCommonPremonitorError(tt.errorType, "msg").ConvertToHTTPError()
			if he.Code != tt.wantCode {
				t.Errorf("ConvertToHTTPError() code = %v, want %v", he.Code, tt.wantCode)
			}
		})
	}
}
