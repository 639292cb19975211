package errors

import "fmt"

// ErrorCode identifies an application error category.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002

	// Extraction
	ErrorCode_MISSING_TRANSCRIPT_TEXT ErrorCode = 2000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "HTTP_OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_MISSING_TRANSCRIPT_TEXT: "MISSING_TRANSCRIPT_TEXT",
}

// String returns the symbolic name of the error code.
func (e ErrorCode) String() string {
	if name, ok := errorCodeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(e))
}
