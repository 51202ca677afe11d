package serverutils

// WebResponse is the common envelope for successful API responses.
type WebResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// WebError is the common envelope for failed API responses.
type WebError struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) WebResponse[T] {
	return WebResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) WebError {
	return WebError{
		Success: false,
		Code:    code,
		Message: message,
	}
}
