package tax

import "errors"

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUnknownCategory      = errors.New("unknown VAT category")
	ErrInvalidDeductionType = errors.New("invalid deduction type")
	ErrInvalidRate          = errors.New("VAT rate must be between 0 and 100")
)
