package client

import (
	"errors"
	"fmt"
)

// APIError error ที่ API ตอบกลับมาพร้อม HTTP status กับ error code
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}
