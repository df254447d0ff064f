package service

import "errors"

var (
	ErrEmptyIDs          = errors.New("ids list cannot be empty")
	ErrInvalidNoteID     = errors.New("invalid note id")
	ErrBatchSizeExceeded = errors.New("batch size limit exceeded")
	ErrEmptyBatch        = errors.New("batch cannot be empty")

	ErrTransactionNotFound = errors.New("transaction note not found")
	ErrNoteNotRecallable   = errors.New("note is not recall-eligible")
	ErrRecallConflict      = errors.New("note was settled concurrently")

	ErrGiftNotFound   = errors.New("gift note not found")
	ErrGiftNotPending = errors.New("gift note is no longer pending")
	ErrGiftNotOwned   = errors.New("gift note does not belong to the caller")

	ErrEmptySecret      = errors.New("gift secret cannot be empty")
	ErrSecretCollision  = errors.New("could not mint a unique gift secret")
	ErrEmptyWallet      = errors.New("wallet address cannot be empty")
	ErrUnknownChallenge = errors.New("unknown or expired challenge")
	ErrInvalidSignature = errors.New("challenge signature verification failed")
	ErrTokenIsExpired   = errors.New("token is expired")
)
