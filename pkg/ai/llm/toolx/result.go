package toolx

import (
	"encoding/json"
	"fmt"
)

// Result is what a tool hands back to the model: either a success payload
// or an error message rendered as {"error": "..."}.
type Result struct {
	payload any
	errMsg  string
	failed  bool
}

func OK(payload any) Result {
	return Result{payload: payload}
}

func Fail(msg string) Result {
	return Result{errMsg: msg, failed: true}
}

func (r Result) IsError() bool {
	return r.failed
}

// Error returns the error message of a failed result, or "".
func (r Result) Error() string {
	return r.errMsg
}

// Value returns the payload, or the error object for failed results.
func (r Result) Value() any {
	if r.failed {
		return map[string]string{"error": r.errMsg}
	}
	return r.payload
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// String is the JSON text appended to the conversation as tool content.
func (r Result) String() string {
	b, err := json.Marshal(r.Value())
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, "result is not serializable: "+err.Error())
	}
	return string(b)
}

type failure struct {
	msg string
}

func (f *failure) Error() string { return f.msg }

// Failf lets a tool report an error message verbatim, without the
// "Error executing function" prefix added to unexpected errors.
func Failf(format string, args ...any) error {
	return &failure{msg: fmt.Sprintf(format, args...)}
}
