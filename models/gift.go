// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Gift is a secret-claimable note. It carries no recipient at creation:
// whoever presents the matching secret claims it. Only the one-way hash
// of the secret is ever persisted.
type Gift struct {
	// ID is the store-assigned identifier, immutable after insert.
	ID int64 `json:"id"`

	// Sender is the address that funded the gift.
	Sender string `json:"sender"`

	// Assets is the ordered (faucet, amount) sequence. A gift mints a
	// single asset but the column shape matches transactions.
	Assets AssetList `json:"assets"`

	// SecretHash is the hex SHA-256 digest of the claim secret. Unique
	// across all gifts; the sole lookup key for claiming.
	SecretHash string `json:"-"`

	// RecallableAt is when the sender's recall window opens. Always set
	// for gifts: creation computes it from the configured delay.
	RecallableAt *time.Time `json:"recallableTime"`

	// SerialNumber is the four-integer anti-replay tag.
	SerialNumber SerialNumber `json:"serialNumber"`

	// Status is the lifecycle state. See [NoteStatus].
	Status NoteStatus `json:"status"`

	// OpenedAt is stamped when the gift is consumed via its secret.
	OpenedAt *time.Time `json:"openedAt,omitempty"`

	// RecalledAt is stamped when the sender reclaims the gift.
	RecalledAt *time.Time `json:"recalledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteStatus implements [RecallableNote].
func (g *Gift) NoteStatus() NoteStatus { return g.Status }

// IsRecallable implements [RecallableNote]. Gifts are recallable by
// construction.
func (g *Gift) IsRecallable() bool { return true }

// RecallableTime implements [RecallableNote].
func (g *Gift) RecallableTime() *time.Time { return g.RecallableAt }

// GiftWithLink pairs a freshly created gift with the opaque claim link
// embedding the secret. The link is returned exactly once, at creation.
type GiftWithLink struct {
	Gift
	Link string `json:"link"`
}
