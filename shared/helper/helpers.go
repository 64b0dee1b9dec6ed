package helper

import (
	"fmt"
)

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter fails or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: %T", res)
	}

	return val, nil
}

// MustGetTypedValue is the panic-on-failure variant of GetTypedValueOf.
// Use when failure should be fatal (e.g., when the guard is guaranteed to exist).
func MustGetTypedValue[T any](getFn func() (any, error)) T {
	res, err := GetTypedValueOf[T](getFn)
	if err != nil {
		panic(err)
	}
	return res
}
