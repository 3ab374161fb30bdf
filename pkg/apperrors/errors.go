package apperrors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnparseable           = errors.New("unparseable citation")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)
