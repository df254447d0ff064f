package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidSender         = errors.New("invalid sender address")
	ErrInvalidRecipient      = errors.New("invalid recipient address")
	ErrSenderIsRecipient     = errors.New("sender and recipient must differ")
	ErrMissingRecallableTime = errors.New("recallable note requires a recallable time")
	ErrRecallableTimeInPast  = errors.New("recallable time must be in the future")
	ErrEmptyAssets           = errors.New("assets list cannot be empty")
	ErrInvalidFaucet         = errors.New("invalid faucet address")
	ErrInvalidAmount         = errors.New("amount must be a positive decimal string")
	ErrInvalidSerialNumber   = errors.New("serial number must have exactly four components")
)
