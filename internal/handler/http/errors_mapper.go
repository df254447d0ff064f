package http

import (
	"errors"
	"net/http"

	"github.com/midenpay/notewarden/internal/service"
	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/internal/validators"
	"github.com/midenpay/notewarden/models"
)

var errorStatusMap = map[error]int{
	validators.ErrUnsupportedType:       http.StatusBadRequest,
	validators.ErrUnknownField:          http.StatusBadRequest,
	validators.ErrInvalidSender:         http.StatusBadRequest,
	validators.ErrInvalidRecipient:      http.StatusBadRequest,
	validators.ErrSenderIsRecipient:     http.StatusBadRequest,
	validators.ErrMissingRecallableTime: http.StatusBadRequest,
	validators.ErrRecallableTimeInPast:  http.StatusBadRequest,
	validators.ErrEmptyAssets:           http.StatusBadRequest,
	validators.ErrInvalidFaucet:         http.StatusBadRequest,
	validators.ErrInvalidAmount:         http.StatusBadRequest,
	validators.ErrInvalidSerialNumber:   http.StatusBadRequest,

	service.ErrEmptyIDs:          http.StatusBadRequest,
	service.ErrInvalidNoteID:     http.StatusBadRequest,
	service.ErrBatchSizeExceeded: http.StatusBadRequest,
	service.ErrEmptyBatch:        http.StatusBadRequest,
	service.ErrEmptySecret:       http.StatusBadRequest,
	service.ErrEmptyWallet:       http.StatusBadRequest,

	service.ErrTransactionNotFound: http.StatusNotFound,
	service.ErrGiftNotFound:        http.StatusNotFound,

	service.ErrNoteNotRecallable: http.StatusConflict,
	service.ErrRecallConflict:    http.StatusConflict,
	service.ErrGiftNotPending:    http.StatusConflict,

	service.ErrGiftNotOwned:      http.StatusForbidden,
	service.ErrUnknownChallenge:  http.StatusUnauthorized,
	service.ErrInvalidSignature:  http.StatusUnauthorized,
	service.ErrTokenIsExpired:    http.StatusUnauthorized,
	models.ErrUnknownNoteKind:    http.StatusBadRequest,
	service.ErrSecretCollision:   http.StatusInternalServerError,

	store.ErrTransactionNoteNotFound: http.StatusNotFound,
	store.ErrGiftNoteNotFound:        http.StatusNotFound,
	store.ErrDuplicateSecretHash:     http.StatusConflict,
	store.ErrNoteNotSaved:            http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
