package result

import "errors"

// Result is the outcome of one network operation.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	// Status is the HTTP status of the response, 0 when none was received.
	Status int `json:"status,omitempty"`
}

// OK wraps data in a successful Result.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail reports a failure that produced no HTTP response (transport errors,
// invalid requests).
func Fail(msg string) Result {
	return Result{Error: msg}
}

// FailStatus reports a failure carried by an HTTP response.
func FailStatus(msg string, status int) Result {
	return Result{Error: msg, Status: status}
}

// Err returns nil for a successful Result and an error carrying the failure
// message otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

// Object returns Data as a JSON object when it is one.
func (r Result) Object() (map[string]any, bool) {
	if !r.Success {
		return nil, false
	}
	m, ok := r.Data.(map[string]any)
	return m, ok
}
