// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Transaction is a direct value-transfer note between two wallet
// addresses. It is persisted only when it is private, recallable, or
// both; public non-recallable transfers have no engine-tracked
// lifecycle and are never stored.
type Transaction struct {
	// ID is the store-assigned identifier, immutable after insert.
	ID int64 `json:"id"`

	// Sender is the owning address. Only the sender may recall.
	Sender string `json:"sender"`

	// Recipient is the claiming address. Always differs from Sender.
	Recipient string `json:"recipient"`

	// Assets is the ordered (faucet, amount) sequence. Never empty.
	Assets AssetList `json:"assets"`

	// Private marks the note as hidden from public chain queries.
	Private bool `json:"private"`

	// Recallable marks the note as reclaimable by the sender once the
	// recall window opens.
	Recallable bool `json:"recallable"`

	// RecallableAt is the instant the recall window opens. Nil means
	// immediately recallable when Recallable is set.
	RecallableAt *time.Time `json:"recallableTime"`

	// SerialNumber is the four-integer anti-replay tag.
	SerialNumber SerialNumber `json:"serialNumber"`

	// Status is the lifecycle state. See [NoteStatus].
	Status NoteStatus `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteStatus implements [RecallableNote].
func (t *Transaction) NoteStatus() NoteStatus { return t.Status }

// IsRecallable implements [RecallableNote].
func (t *Transaction) IsRecallable() bool { return t.Recallable }

// RecallableTime implements [RecallableNote].
func (t *Transaction) RecallableTime() *time.Time { return t.RecallableAt }
