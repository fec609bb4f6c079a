package widgets

import "errors"

var (
	ErrLocked           = errors.New("widget is locked")
	ErrAlreadyValidated = errors.New("widget already validated")
	ErrUnknownItem      = errors.New("unknown item")
	ErrClosed           = errors.New("widget closed")
	ErrNotInteractive   = errors.New("item is not interactive")
	ErrEmptyInput       = errors.New("input is empty")
	ErrPending          = errors.New("evaluation in progress")
)
