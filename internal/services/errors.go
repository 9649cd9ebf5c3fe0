package services

import (
	"errors"
	"fmt"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// UserFacing converts any error from the store or session layers into a
// status code and a message fit for a notification. Quota failures get
// the actionable wording the dashboard shows; everything else that is
// not already a ServiceError collapses to a generic 500 so internal
// detail never leaks into a toast.
func UserFacing(err error) (int, string) {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Status, svcErr.Message
	}
	if errors.Is(err, storage.ErrQuotaExceeded) {
		return 507, "Storage is full. Delete old items or use smaller files, then try again."
	}
	if errors.Is(err, storage.ErrNotFound) {
		return 404, "Not found"
	}
	return 500, "Something went wrong. Your previous data is unchanged."
}
