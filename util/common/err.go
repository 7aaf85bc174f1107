package common

import (
	"errors"
)

// Combine joins non-nil errors into one, nil when all are nil.
func Combine(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return errors.Join(filtered...)
}
