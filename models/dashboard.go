// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// RecallItem is one entry of the recall dashboard: either a transaction
// or a gift, tagged with its kind so the client renders both uniformly.
// Exactly one of Transaction/Gift is set, matching Kind.
type RecallItem struct {
	Kind        NoteKind     `json:"kind"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Gift        *Gift        `json:"gift,omitempty"`
}

// RecallDashboard is the read-only aggregate of a sender's recallable
// holdings at a reference time.
type RecallDashboard struct {
	// RecallableItems are pending notes whose recall window is open.
	RecallableItems []RecallItem `json:"recallableItems"`

	// WaitingToRecallItems are pending, recallable notes whose window
	// has not yet opened.
	WaitingToRecallItems []RecallItem `json:"waitingToRecallItems"`

	// NextRecallTime is the earliest window opening among the waiting
	// items, nil when nothing is waiting.
	NextRecallTime *time.Time `json:"nextRecallTime"`

	// RecalledCount is the sender's lifetime count of recalled notes
	// across both kinds.
	RecalledCount int `json:"recalledCount"`
}
