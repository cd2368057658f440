// Package jsonutil wraps the standard JSON codec with the small surface
// the rest of the program needs: plain encoding and typed decoding with
// a distinguishable parse failure.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// ParseError reports that input text was not valid JSON for the
// requested target type.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON input: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode returns the JSON text of v using the standard encoder defaults.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("unable to encode value to JSON: %w", err)
	}
	return string(data), nil
}

// Decode parses text into a value of T, binding T's method set to the
// parsed data. A syntactically invalid input fails with *ParseError.
func Decode[T any](text string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return v, &ParseError{Err: err}
	}
	return v, nil
}
