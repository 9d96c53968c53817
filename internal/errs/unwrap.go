package errs

import "errors"

// UnwrapOrSelf returns the wrapped error, or err itself when there is nothing
// to unwrap.
func UnwrapOrSelf(err error) error {
	unwrapped := errors.Unwrap(err)
	if unwrapped == nil {
		return err
	}
	return unwrapped
}
