package handler

import (
	"errors"

	"waterpark-pos/internal/service"
)

// statusFor maps service errors to HTTP codes. Rejections the services
// mark as validation failures come back as 400; anything unrecognized is
// a server fault.
func statusFor(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return 404
	case errors.Is(err, service.ErrAlreadyReturned),
		errors.Is(err, service.ErrParentAlreadyLinked),
		errors.Is(err, service.ErrParentNotActive):
		return 409
	case errors.Is(err, service.ErrForbidden):
		return 403
	case errors.Is(err, service.ErrChildReturn),
		errors.Is(err, service.ErrDeductionExceedsHeld),
		errors.As(err, &ve):
		return 400
	default:
		return 500
	}
}
