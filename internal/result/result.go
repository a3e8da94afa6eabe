// Package result provides the success/failure envelope every service
// operation returns.
package result

import "encoding/json"

// Result is either a success carrying a payload or a failure carrying
// one or more user-facing messages. The zero value is a failure with no
// messages and should not be used; build values with Success or Failure.
type Result[T any] struct {
	payload T
	errors  []string
	ok      bool
}

// Success wraps a payload.
func Success[T any](payload T) Result[T] {
	return Result[T]{payload: payload, ok: true}
}

// Failure wraps one or more diagnostic messages.
func Failure[T any](messages ...string) Result[T] {
	return Result[T]{errors: append([]string(nil), messages...)}
}

func (r Result[T]) Succeeded() bool {
	return r.ok
}

// Payload returns the payload and true on success, the zero value and
// false on failure.
func (r Result[T]) Payload() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.payload, true
}

// Errors returns a copy of the failure messages; empty on success.
func (r Result[T]) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Err returns the first failure message, or "" on success.
func (r Result[T]) Err() string {
	if r.ok || len(r.errors) == 0 {
		return ""
	}
	return r.errors[0]
}

// Map transforms the payload of a successful result and passes failures
// through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{errors: r.errors}
	}
	return Success(fn(r.payload))
}

type envelope[T any] struct {
	Succeeded bool     `json:"succeeded"`
	Payload   *T       `json:"payload"`
	Errors    []string `json:"errors"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	env := envelope[T]{Succeeded: r.ok, Errors: r.Errors()}
	if r.ok {
		p := r.payload
		env.Payload = &p
	}
	return json.Marshal(env)
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*r = Result[T]{ok: env.Succeeded, errors: env.Errors}
	if env.Succeeded && env.Payload != nil {
		r.payload = *env.Payload
	}
	return nil
}
