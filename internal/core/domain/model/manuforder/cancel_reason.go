package manuforder

import (
	"errors"

	"production/internal/pkg/errs"
)

// CancelReason is the reference value attached to every canceled order.
type CancelReason struct {
	code string
	name string
}

// NewCancelReason creates a reason; both code and display name are required.
func NewCancelReason(code, name string) (CancelReason, error) {
	var errCode, errName error
	if code == "" {
		errCode = errs.NewValueIsRequiredError("code")
	}
	if name == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(errCode, errName); err != nil {
		return CancelReason{}, err
	}
	return CancelReason{code: code, name: name}, nil
}

func (r CancelReason) Code() string { return r.code }
func (r CancelReason) Name() string { return r.name }
