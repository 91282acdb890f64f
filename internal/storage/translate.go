package storage

import (
	"errors"

	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

// Translate maps storage sentinels onto typed API errors. resource names the
// entity in client-facing messages, e.g. "Building".
func Translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case pkgerrors.As(err) != nil:
		return err
	case errors.Is(err, ErrNotFound):
		return pkgerrors.NotFound(resource)
	case errors.Is(err, ErrConflict):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, resource+" is still referenced by other records")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storage: "+resource)
	}
}
