package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/internal/utils"
	"github.com/midenpay/notewarden/internal/validators"
	"github.com/midenpay/notewarden/models"
)

// secretMintAttempts bounds the retry loop on a secret-hash collision.
// With 24 bytes of entropy a collision is effectively impossible; the
// loop exists so the unique index is a retry signal, not an outage.
const secretMintAttempts = 3

// giftService is the concrete implementation of GiftService. The claim
// credential is the secret handed out at creation: only its SHA-256
// digest is stored, and every lookup rehashes the presented secret.
type giftService struct {
	giftRepository store.GiftRepository
	validator      validators.Validator

	// recallDelay is added to creation time to compute when the
	// sender's recall window opens.
	recallDelay time.Duration

	// enforceSender requires gift recall callers to be the original
	// sender. On unless explicitly disabled in configuration.
	enforceSender bool

	now func() time.Time

	logger *logger.Logger
}

// NewGiftService constructs a GiftService wired to the given repository
// and populated with lifecycle parameters from cfg.
func NewGiftService(giftRepository store.GiftRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) GiftService {
	return &giftService{
		giftRepository: giftRepository,
		validator:      validator,
		recallDelay:    cfg.GiftRecallDelay,
		enforceSender:  !cfg.DisableGiftSenderCheck,
		now:            time.Now,
		logger:         logger,
	}
}

// Send validates the payload, mints a claim secret, and persists a new
// pending gift carrying only the secret's hash. The recall window opens
// at creation time plus the configured delay. The returned link embeds
// the cleartext secret and is the only time it ever leaves the engine.
func (g *giftService) Send(ctx context.Context, req models.CreateGiftRequest) (*models.GiftWithLink, error) {
	log := logger.FromContext(ctx)

	if err := g.validator.Validate(ctx, &req); err != nil {
		log.Warn().Err(err).
			Str("func", "giftService.Send").
			Msg("gift payload rejected")
		return nil, err
	}

	recallableAt := g.now().Add(g.recallDelay)

	for attempt := 1; attempt <= secretMintAttempts; attempt++ {
		secret, err := utils.GenerateGiftSecret()
		if err != nil {
			return nil, fmt.Errorf("minting gift secret: %w", err)
		}

		gift := &models.Gift{
			Sender:       req.Sender,
			Assets:       models.AssetList{{FaucetID: req.Token, Amount: req.Amount}},
			SecretHash:   utils.HashSecret(secret),
			RecallableAt: &recallableAt,
			SerialNumber: req.SerialNumber,
			Status:       models.StatusPending,
		}

		saveErr := g.giftRepository.Save(ctx, gift)
		if errors.Is(saveErr, store.ErrDuplicateSecretHash) {
			log.Warn().
				Str("func", "giftService.Send").
				Int("attempt", attempt).
				Msg("secret hash collision, reminting")
			continue
		}
		if saveErr != nil {
			return nil, fmt.Errorf("saving gift note: %w", saveErr)
		}

		return &models.GiftWithLink{Gift: *gift, Link: "/gift/" + secret}, nil
	}

	return nil, ErrSecretCollision
}

// GetBySecret hashes the presented secret and looks the gift up by the
// digest. Returns (nil, nil) when nothing matches; presenting a wrong
// secret is a probe, not an error.
func (g *giftService) GetBySecret(ctx context.Context, secret string) (*models.Gift, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	gift, err := g.giftRepository.FindOne(ctx, store.GiftFilter{SecretHash: utils.HashSecret(secret)})
	if err != nil {
		return nil, fmt.Errorf("finding gift by secret: %w", err)
	}

	return gift, nil
}

// Open claims the gift matching the presented secret, transitioning it
// pending → consumed and stamping openedAt.
//
// Failure modes:
//   - ErrGiftNotFound when no gift matches the hash,
//   - ErrGiftNotPending when the gift exists but was already opened or
//     recalled — a second open never succeeds, even against a racing
//     first open, because the transition pins the pending status.
func (g *giftService) Open(ctx context.Context, secret string) (*models.Gift, error) {
	log := logger.FromContext(ctx)

	if secret == "" {
		return nil, ErrEmptySecret
	}
	secretHash := utils.HashSecret(secret)

	existing, err := g.giftRepository.FindOne(ctx, store.GiftFilter{SecretHash: secretHash})
	if err != nil {
		return nil, fmt.Errorf("finding gift by secret: %w", err)
	}
	if existing == nil {
		return nil, ErrGiftNotFound
	}

	gift, err := g.giftRepository.Transition(ctx, store.GiftFilter{SecretHash: secretHash}, models.StatusConsumed, g.now())
	if err != nil {
		if errors.Is(err, store.ErrGiftNoteNotFound) {
			log.Warn().
				Str("func", "giftService.Open").
				Int64("id", existing.ID).
				Str("status", string(existing.Status)).
				Msg("gift already settled")
			return nil, ErrGiftNotPending
		}
		return nil, fmt.Errorf("opening gift: %w", err)
	}

	return gift, nil
}

// Recall reclaims a pending gift for its sender, transitioning it
// pending → recalled and stamping recalledAt.
//
// When sender enforcement is on (the default), the filter carries the
// caller's address and a gift owned by someone else reads as not found
// rather than leaking its existence.
func (g *giftService) Recall(ctx context.Context, id int64, sender string) (*models.Gift, error) {
	log := logger.FromContext(ctx)

	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNoteID, id)
	}

	filter := store.GiftFilter{ID: id}
	if g.enforceSender {
		if sender == "" {
			return nil, ErrGiftNotOwned
		}
		filter.Sender = sender
	}

	gift, err := g.giftRepository.Transition(ctx, filter, models.StatusRecalled, g.now())
	if err != nil {
		if errors.Is(err, store.ErrGiftNoteNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrGiftNotFound, id)
		}
		return nil, fmt.Errorf("recalling gift: %w", err)
	}

	log.Info().
		Str("func", "giftService.Recall").
		Int64("id", gift.ID).
		Msg("gift recalled")

	return gift, nil
}

// FindRecallable returns the sender's pending gifts. Every gift is
// recallable by construction; the dashboard splits them into eligible
// and waiting by recall window.
func (g *giftService) FindRecallable(ctx context.Context, sender string) ([]models.Gift, error) {
	gifts, err := g.giftRepository.Find(ctx, store.GiftFilter{
		Sender: sender,
		Status: models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("finding recallable gifts: %w", err)
	}
	return gifts, nil
}

// FindRecalled returns the sender's gifts already in the recalled
// terminal state.
func (g *giftService) FindRecalled(ctx context.Context, sender string) ([]models.Gift, error) {
	gifts, err := g.giftRepository.Find(ctx, store.GiftFilter{
		Sender: sender,
		Status: models.StatusRecalled,
	})
	if err != nil {
		return nil, fmt.Errorf("finding recalled gifts: %w", err)
	}
	return gifts, nil
}
