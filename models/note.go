// SPDX-License-Identifier: Apache-2.0

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// NoteStatus is the lifecycle state of a note. Transitions are one-way:
// a note starts as Pending and moves exactly once to either Recalled or
// Consumed. There is no path out of a terminal state.
type NoteStatus string

const (
	// StatusPending marks a note that has been issued but not yet
	// settled by either side.
	StatusPending NoteStatus = "pending"

	// StatusRecalled marks a note reclaimed by its sender. Terminal.
	StatusRecalled NoteStatus = "recalled"

	// StatusConsumed marks a note claimed by its recipient. Terminal.
	StatusConsumed NoteStatus = "consumed"
)

// Terminal reports whether the status admits no further transitions.
func (s NoteStatus) Terminal() bool {
	return s == StatusRecalled || s == StatusConsumed
}

// NoteKind discriminates the two note variants tracked by the engine.
// It is a closed set: code dispatching on it must handle every constant
// and reject anything else, so adding a third kind is a visible change
// at every dispatch site.
type NoteKind string

const (
	KindTransaction NoteKind = "transaction"
	KindGift        NoteKind = "gift"
)

// ErrUnknownNoteKind is returned when a NoteKind value outside the
// closed set reaches a dispatch site.
var ErrUnknownNoteKind = errors.New("unknown note kind")

// Valid reports whether k is one of the recognized note kinds.
func (k NoteKind) Valid() bool {
	return k == KindTransaction || k == KindGift
}

// Asset is a single (faucet, amount) pair carried by a note. Amount is a
// positive decimal kept as a string end to end; the engine never does
// arithmetic on it.
type Asset struct {
	FaucetID string `json:"faucetId"`
	Amount   string `json:"amount"`
}

// AssetList is the ordered asset sequence of a note, stored as a jsonb
// column.
type AssetList []Asset

// Value implements [driver.Valuer] by serializing the list to JSON.
func (a AssetList) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements [sql.Scanner]. Accepts []byte or string jsonb payloads.
func (a *AssetList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into AssetList", src)
	}
}

// SerialNumber is the four-component anti-replay tag of the underlying
// cryptographic note. The engine validates its shape only; the values
// are opaque.
type SerialNumber []int64

// SerialNumberLen is the required component count of a serial number.
const SerialNumberLen = 4

// Value implements [driver.Valuer] by serializing to JSON.
func (s SerialNumber) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements [sql.Scanner].
func (s *SerialNumber) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into SerialNumber", src)
	}
}

// RecallableNote is the minimal capability both note kinds expose to the
// shared eligibility logic: a lifecycle status, a recallable flag, and
// an optional earliest-recall timestamp.
type RecallableNote interface {
	NoteStatus() NoteStatus
	IsRecallable() bool
	RecallableTime() *time.Time
}

// RecallEligible reports whether n may be recalled by its sender at the
// reference time now. A note is eligible iff it is still pending, is
// flagged recallable, and its recall window has opened (a nil
// recallableTime means immediately recallable).
func RecallEligible(n RecallableNote, now time.Time) bool {
	if n.NoteStatus() != StatusPending || !n.IsRecallable() {
		return false
	}
	at := n.RecallableTime()
	return at == nil || !at.After(now)
}

// WaitingToRecall reports whether n is pending and recallable but its
// recall window has not yet opened at the reference time now.
func WaitingToRecall(n RecallableNote, now time.Time) bool {
	if n.NoteStatus() != StatusPending || !n.IsRecallable() {
		return false
	}
	at := n.RecallableTime()
	return at != nil && at.After(now)
}
