package validators

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/midenpay/notewarden/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldSender targets the owning address of a note payload.
	FieldSender = "sender"

	// FieldRecipient targets the destination address of a transaction payload.
	FieldRecipient = "recipient"

	// FieldRecallableTime targets the earliest-recall timestamp of a
	// recallable payload.
	FieldRecallableTime = "recallable_time"

	// FieldAssets targets the asset list of a payload.
	FieldAssets = "assets"

	// FieldSerialNumber targets the four-component serial number tag.
	FieldSerialNumber = "serial_number"
)

const (
	addressPrefix    = "0x"
	addressHexMinLen = 16
	addressHexMaxLen = 64
)

// NoteValidator implements the Validator interface for the inbound note
// payloads: SendTransactionRequest and CreateGiftRequest. It supports
// both value and pointer forms of each payload type; only the pointer
// forms are normalized in place (addresses canonicalized to lower case,
// strings trimmed).
//
// Checks run in a fixed order and short-circuit on the first failure:
// addresses first, then the recall window, then assets, then the serial
// number.
type NoteValidator struct {
	// now supplies the reference time for the recall-window check.
	// Overridable in tests; defaults to time.Now.
	now func() time.Time
}

// NewNoteValidator constructs a new NoteValidator and returns it as the
// Validator interface.
func NewNoteValidator() Validator {
	return &NoteValidator{now: time.Now}
}

// Validate dispatches validation to the appropriate type-specific
// method based on the dynamic type of value.
func (v *NoteValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch payload := value.(type) {
	case *models.SendTransactionRequest:
		return v.validateSendTransaction(ctx, payload, fields...)
	case models.SendTransactionRequest:
		return v.validateSendTransaction(ctx, &payload, fields...)
	case *models.CreateGiftRequest:
		return v.validateCreateGift(ctx, payload, fields...)
	case models.CreateGiftRequest:
		return v.validateCreateGift(ctx, &payload, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *NoteValidator) validateSendTransaction(_ context.Context, req *models.SendTransactionRequest, fields ...string) error {
	req.Sender = canonicalizeAddress(req.Sender)
	req.Recipient = canonicalizeAddress(req.Recipient)

	if len(fields) == 0 {
		fields = []string{FieldSender, FieldRecipient, FieldRecallableTime, FieldAssets, FieldSerialNumber}
	}

	for _, field := range fields {
		switch field {
		case FieldSender:
			if !isAddress(req.Sender) {
				return ErrInvalidSender
			}
		case FieldRecipient:
			if !isAddress(req.Recipient) {
				return ErrInvalidRecipient
			}
			if req.Recipient == req.Sender {
				return ErrSenderIsRecipient
			}
		case FieldRecallableTime:
			if !req.Recallable {
				continue
			}
			if req.RecallableAt == nil {
				return ErrMissingRecallableTime
			}
			if !req.RecallableAt.After(v.now()) {
				return ErrRecallableTimeInPast
			}
		case FieldAssets:
			if err := validateAssets(req.Assets); err != nil {
				return err
			}
		case FieldSerialNumber:
			if len(req.SerialNumber) != models.SerialNumberLen {
				return ErrInvalidSerialNumber
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *NoteValidator) validateCreateGift(_ context.Context, req *models.CreateGiftRequest, fields ...string) error {
	req.Sender = canonicalizeAddress(req.Sender)
	req.Token = canonicalizeAddress(req.Token)
	req.Amount = strings.TrimSpace(req.Amount)

	if len(fields) == 0 {
		fields = []string{FieldSender, FieldAssets, FieldSerialNumber}
	}

	for _, field := range fields {
		switch field {
		case FieldSender:
			if !isAddress(req.Sender) {
				return ErrInvalidSender
			}
		case FieldAssets:
			if !isAddress(req.Token) {
				return ErrInvalidFaucet
			}
			if !isPositiveAmount(req.Amount) {
				return ErrInvalidAmount
			}
		case FieldSerialNumber:
			if len(req.SerialNumber) != models.SerialNumberLen {
				return ErrInvalidSerialNumber
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// validateAssets checks the asset list of a transaction payload: at
// least one entry, each with a well-formed faucet address and a
// positive decimal amount. Entries are normalized in place.
func validateAssets(assets models.AssetList) error {
	if len(assets) == 0 {
		return ErrEmptyAssets
	}

	for idx := range assets {
		assets[idx].FaucetID = canonicalizeAddress(assets[idx].FaucetID)
		assets[idx].Amount = strings.TrimSpace(assets[idx].Amount)

		if !isAddress(assets[idx].FaucetID) {
			return fmt.Errorf("%w: asset %d", ErrInvalidFaucet, idx)
		}
		if !isPositiveAmount(assets[idx].Amount) {
			return fmt.Errorf("%w: asset %d", ErrInvalidAmount, idx)
		}
	}

	return nil
}

// canonicalizeAddress trims surrounding whitespace and lowers the hex
// casing so that equal addresses compare equal as strings.
func canonicalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// isAddress reports whether addr is a canonicalized wallet or faucet
// address: the 0x prefix followed by 16 to 64 lowercase hex digits.
func isAddress(addr string) bool {
	if !strings.HasPrefix(addr, addressPrefix) {
		return false
	}

	hex := addr[len(addressPrefix):]
	if len(hex) < addressHexMinLen || len(hex) > addressHexMaxLen {
		return false
	}

	for _, r := range hex {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}

// isPositiveAmount reports whether s is a decimal string greater than
// zero. A single fractional point is allowed; signs, exponents, and
// grouping are not. The engine never does arithmetic on amounts, so the
// check stays purely lexical.
func isPositiveAmount(s string) bool {
	if s == "" {
		return false
	}

	var seenPoint, seenDigit, nonZero bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			if r != '0' {
				nonZero = true
			}
		case r == '.':
			if seenPoint {
				return false
			}
			seenPoint = true
		default:
			return false
		}
	}

	return seenDigit && nonZero
}
