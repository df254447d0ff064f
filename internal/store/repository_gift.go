package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
)

// giftRepository is the PostgreSQL-backed implementation of
// [GiftRepository], executing against the "gifts" table.
type giftRepository struct {
	*DB
	logger *logger.Logger
}

// NewGiftRepository constructs a [GiftRepository] backed by the
// provided database connection and logger.
func NewGiftRepository(db *DB, logger *logger.Logger) GiftRepository {
	return &giftRepository{
		DB:     db,
		logger: logger,
	}
}

// Save persists a new gift note. The generated id and timestamps are
// written back into the model. A secret-hash collision surfaces as
// [ErrDuplicateSecretHash] so the caller can mint a fresh secret.
func (g *giftRepository) Save(ctx context.Context, gift *models.Gift) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertGiftQuery(gift)
	if err != nil {
		log.Err(err).
			Str("func", "giftRepository.Save").
			Msg("failed to build insert query")
		return err
	}

	err = g.DB.QueryRowContext(ctx, query, args...).
		Scan(&gift.ID, &gift.CreatedAt, &gift.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn().
				Str("func", "giftRepository.Save").
				Str("sender", gift.Sender).
				Msg("gift secret hash collision")
			return ErrDuplicateSecretHash
		}

		log.Err(err).
			Str("func", "giftRepository.Save").
			Str("sender", gift.Sender).
			Msg("failed to save gift note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// FindOne retrieves a single gift note matching the filter, or nil when
// nothing matches. A nil result with a nil error is the "not found"
// answer for secret lookups, which are probes rather than assertions.
func (g *giftRepository) FindOne(ctx context.Context, filter GiftFilter) (*models.Gift, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectGiftsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "giftRepository.FindOne").
			Msg("failed to create query")
		return nil, err
	}

	var gift models.Gift
	scanErr := g.DB.QueryRowContext(ctx, query, args...).Scan(
		&gift.ID,
		&gift.Sender,
		&gift.Assets,
		&gift.SecretHash,
		&gift.RecallableAt,
		&gift.SerialNumber,
		&gift.Status,
		&gift.OpenedAt,
		&gift.RecalledAt,
		&gift.CreatedAt,
		&gift.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, nil
		}

		log.Err(scanErr).
			Str("func", "giftRepository.FindOne").
			Msg("failed to scan gift note row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return &gift, nil
}

// Find retrieves gift notes matching the filter, newest-first. Returns
// an empty slice when nothing matches.
func (g *giftRepository) Find(ctx context.Context, filter GiftFilter) ([]models.Gift, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectGiftsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "giftRepository.Find").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := g.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "giftRepository.Find").
			Str("sender", filter.Sender).
			Msg("failed to execute query for finding gift notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Gift, 0, 20)

	for rows.Next() {
		var gift models.Gift

		scanErr := rows.Scan(
			&gift.ID,
			&gift.Sender,
			&gift.Assets,
			&gift.SecretHash,
			&gift.RecallableAt,
			&gift.SerialNumber,
			&gift.Status,
			&gift.OpenedAt,
			&gift.RecalledAt,
			&gift.CreatedAt,
			&gift.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "giftRepository.Find").
				Msg("failed to scan gift note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, gift)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "giftRepository.Find").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Transition atomically settles one pending gift note. The conditional
// UPDATE pins status = pending, so the first settlement wins and any
// repeat sees [ErrGiftNoteNotFound] — the gift no longer matches the
// pending precondition. The updated row comes back via RETURNING.
func (g *giftRepository) Transition(ctx context.Context, filter GiftFilter, to models.NoteStatus, stamp time.Time) (*models.Gift, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTransitionGiftQuery(filter, to, stamp)
	if err != nil {
		log.Err(err).
			Str("func", "giftRepository.Transition").
			Str("to", string(to)).
			Msg("failed to build transition query")
		return nil, err
	}

	var gift models.Gift
	scanErr := g.DB.withRetry(ctx, func() error {
		return g.DB.QueryRowContext(ctx, query, args...).Scan(
			&gift.ID,
			&gift.Sender,
			&gift.Assets,
			&gift.SecretHash,
			&gift.RecallableAt,
			&gift.SerialNumber,
			&gift.Status,
			&gift.OpenedAt,
			&gift.RecalledAt,
			&gift.CreatedAt,
			&gift.UpdatedAt,
		)
	})
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "giftRepository.Transition").
				Int64("id", filter.ID).
				Str("to", string(to)).
				Msg("no pending gift matched the transition")
			return nil, ErrGiftNoteNotFound
		}

		log.Err(scanErr).
			Str("func", "giftRepository.Transition").
			Int64("id", filter.ID).
			Str("to", string(to)).
			Msg("failed to execute gift transition")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	log.Info().
		Str("func", "giftRepository.Transition").
		Int64("id", gift.ID).
		Str("to", string(to)).
		Msg("transitioned gift note")

	return &gift, nil
}
