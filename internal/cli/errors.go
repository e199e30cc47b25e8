package cli

import (
	"errors"
	"fmt"
)

var errBlankComment = errors.New("comment text is required")

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}
