package shared

// Result is the response envelope returned by every mutating service
// operation. Reads return bare objects instead.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// Fail returns a failed result carrying an explanatory message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

// OK returns a successful result with a message and payload.
func OK[T any](message string, data *T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Status is the payload-less variant of Result, used by delete and bulk
// upload operations.
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FailStatus returns a failed status with a message.
func FailStatus(message string) Status {
	return Status{Success: false, Message: message}
}

// OKStatus returns a successful status with a message.
func OKStatus(message string) Status {
	return Status{Success: true, Message: message}
}
