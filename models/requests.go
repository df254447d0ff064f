// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// SendTransactionRequest is the inbound payload for creating a single
// transaction note. Field names match the wire format of the wallet
// clients.
type SendTransactionRequest struct {
	Sender       string       `json:"sender"`
	Recipient    string       `json:"recipient"`
	Assets       AssetList    `json:"assets"`
	Private      bool         `json:"private"`
	Recallable   bool         `json:"recallable"`
	RecallableAt *time.Time   `json:"recallableTime,omitempty"`
	SerialNumber SerialNumber `json:"serialNumber"`
}

// CreateGiftRequest is the inbound payload for minting a gift note.
// A gift carries exactly one asset.
type CreateGiftRequest struct {
	Sender       string       `json:"senderAddress"`
	Token        string       `json:"token"`
	Amount       string       `json:"amount"`
	SerialNumber SerialNumber `json:"serialNumber"`
}

// AffectedResponse reports how many rows a bulk transition touched.
type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

// InitiateAuthRequest starts a wallet challenge handshake.
type InitiateAuthRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// InitiateAuthResponse carries the one-time challenge the wallet must
// sign to obtain a session token.
type InitiateAuthResponse struct {
	ChallengeCode string    `json:"challengeCode"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// AuthenticateRequest exchanges a signed challenge for a session token.
// Signature verification is delegated to the wallet signature
// capability; the engine only checks the challenge lifecycle.
type AuthenticateRequest struct {
	WalletAddress string `json:"walletAddress"`
	ChallengeCode string `json:"challengeCode"`
	Signature     string `json:"signature"`
}

// AuthenticateResponse carries the issued session token.
type AuthenticateResponse struct {
	SessionToken  string    `json:"sessionToken"`
	WalletAddress string    `json:"walletAddress"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
