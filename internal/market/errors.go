package market

import (
	"encoding/json"
	"fmt"
)

// APIError is the normalized form of a non-2xx marketplace API response.
// The message is always a single human-readable string; Code is set only
// when the server supplied one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error renders the message, prefixed with "[code] " when a code is present.
func (e *APIError) Error() string {
	if e.Code != "" {
		return "[" + e.Code + "] " + e.Message
	}
	return e.Message
}

// errorBody covers the two error shapes the API produces:
// {"error":{"code","message"}} from the service layer and {"detail"} from
// framework-level rejections.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

// normalizeError derives an *APIError from a response body, trying each
// accepted shape in order. An unparseable body falls back to a generic
// status message rather than failing.
func normalizeError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: fmt.Sprintf("Request failed: %d", status),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}

	if parsed.Error != nil {
		apiErr.Code = parsed.Error.Code
	}
	switch {
	case parsed.Error != nil && parsed.Error.Message != "":
		apiErr.Message = parsed.Error.Message
	case parsed.Detail != "":
		apiErr.Message = parsed.Detail
	}

	return apiErr
}
