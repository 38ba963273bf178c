package client

import "errors"

// User-facing messages, keyed by failure class. The backend serves a
// Vietnamese-speaking market; the client surfaces Vietnamese text the
// UI can show verbatim.
const (
	msgSessionExpired = "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại"
	msgForbidden      = "Bạn không có quyền thực hiện thao tác này"
	msgNotFound       = "Không tìm thấy yêu cầu rút tiền"
	msgServerError    = "Lỗi máy chủ. Vui lòng thử lại sau"
	msgTryAgain       = "Đã xảy ra lỗi. Vui lòng thử lại"
)

// APIError is any failure surfaced by the client after dispatch:
// transport failures, malformed responses and application errors from
// the envelope. Message is always safe to show to the user; the
// underlying cause, when present, is reachable through Unwrap.
type APIError struct {
	// StatusCode is the HTTP status, or 0 when the call never
	// completed.
	StatusCode int
	// Code is the envelope's error field; 0 when the failure happened
	// below the application layer.
	Code int
	// Message is the normalized user-facing text.
	Message string

	cause error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.cause }

// IsAuthError reports whether err is an expired or missing session.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// messageFor maps an HTTP status and server-provided message to the
// text shown to the user. Status-based messages win for the statuses
// the app treats specially; otherwise the server's own message is
// trusted, with a generic fallback when it is empty.
func messageFor(status int, serverMsg string) string {
	switch {
	case status == 401:
		return msgSessionExpired
	case status == 403:
		return msgForbidden
	case status == 404:
		return msgNotFound
	case status >= 500:
		return msgServerError
	case serverMsg != "":
		return serverMsg
	default:
		return msgTryAgain
	}
}

func transportError(cause error) *APIError {
	return &APIError{Message: msgTryAgain, cause: cause}
}

func statusError(status int, serverMsg string, cause error) *APIError {
	return &APIError{StatusCode: status, Message: messageFor(status, serverMsg), cause: cause}
}
