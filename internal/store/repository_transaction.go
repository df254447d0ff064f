package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
)

// transactionRepository is the PostgreSQL-backed implementation of
// [TransactionRepository]. It executes all transaction-note operations
// against the "transactions" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (sender, id counts, statuses).
type transactionRepository struct {
	*DB
	logger *logger.Logger
}

// NewTransactionRepository constructs a [TransactionRepository] backed
// by the provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods
// prefer the context-scoped logger obtained via [logger.FromContext].
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	return &transactionRepository{
		DB:     db,
		logger: logger,
	}
}

// Find retrieves transaction notes matching the filter, newest-first.
// Returns an empty slice when nothing matches.
func (t *transactionRepository) Find(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTransactionsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.Find").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := t.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.Find").
			Str("sender", filter.Sender).
			Int("ids_count", len(filter.IDs)).
			Msg("failed to execute query for finding transaction notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, 50)

	for rows.Next() {
		var note models.Transaction

		scanErr := rows.Scan(
			&note.ID,
			&note.Sender,
			&note.Recipient,
			&note.Assets,
			&note.Private,
			&note.Recallable,
			&note.RecallableAt,
			&note.SerialNumber,
			&note.Status,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "transactionRepository.Find").
				Msg("failed to scan transaction note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "transactionRepository.Find").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Save persists one or more new transaction notes.
//
// Routing strategy:
//   - Exactly one note → [saveSingleNote] (plain INSERT, no transaction).
//   - Two or more notes → [saveMultipleNotes] (transaction, each insert
//     prepared per statement since argument sets differ only in values).
//
// On success each [models.Transaction.ID] is populated with the
// server-assigned primary key returned by the INSERT … RETURNING clause.
func (t *transactionRepository) Save(ctx context.Context, notes ...*models.Transaction) error {
	if len(notes) == 1 {
		return t.saveSingleNote(ctx, notes[0])
	}

	return t.saveMultipleNotes(ctx, notes)
}

// saveSingleNote inserts a single transaction note without opening a
// transaction. The generated id and timestamps are written back into
// the model via the RETURNING clause.
func (t *transactionRepository) saveSingleNote(ctx context.Context, note *models.Transaction) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("sender", note.Sender).
		Str("recipient", note.Recipient).
		Msg("saving single transaction note")

	query, args, err := buildInsertTransactionQuery(note)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveSingleNote").
			Msg("failed to build insert query")
		return err
	}

	err = t.DB.QueryRowContext(ctx, query, args...).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveSingleNote").
			Str("sender", note.Sender).
			Msg("failed to save transaction note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// saveMultipleNotes inserts two or more transaction notes inside a
// single database transaction using a prepared statement.
//
// The transaction is rolled back automatically (via defer) if any
// individual insert fails; the commit is attempted only after all notes
// succeed, preserving the all-or-nothing contract of batch sends.
func (t *transactionRepository) saveMultipleNotes(ctx context.Context, notes []*models.Transaction) error {
	log := logger.FromContext(ctx)

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// All inserts share the same SQL shape; build once from the first
	// note and prepare a reusable statement.
	query, _, err := buildInsertTransactionQuery(notes[0])
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveMultipleNotes").
			Msg("failed to build insert query")
		return err
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.saveMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, note := range notes {
		log.Debug().
			Str("func", "transactionRepository.saveMultipleNotes").
			Int("iteration", idx+1).
			Int("total", len(notes)).
			Str("sender", note.Sender).
			Msg("saving transaction note in transaction")

		queryErr := stmt.QueryRowContext(ctx,
			note.Sender,
			note.Recipient,
			note.Assets,
			note.Private,
			note.Recallable,
			note.RecallableAt,
			note.SerialNumber,
			note.Status,
		).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

		if queryErr != nil {
			log.Err(queryErr).
				Str("func", "transactionRepository.saveMultipleNotes").
				Int("iteration", idx+1).
				Str("sender", note.Sender).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "transactionRepository.saveMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// TransitionStatus atomically moves every listed note still in the
// expected prior status to the target status and returns the number of
// rows actually transitioned.
//
// The eligibility check and the write are one conditional UPDATE, so
// two racing settlements of the same note can never both succeed: the
// loser sees a smaller affected count and the caller reports the lost
// race instead of silently under-counting.
func (t *transactionRepository) TransitionStatus(ctx context.Context, ids []int64, from, to models.NoteStatus) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTransitionTransactionsQuery(ids, from, to)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.TransitionStatus").
			Msg("failed to build transition query")
		return 0, err
	}

	var result sql.Result
	err = t.DB.withRetry(ctx, func() error {
		var execErr error
		result, execErr = t.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.TransitionStatus").
			Int("ids_count", len(ids)).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("failed to execute status transition")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.TransitionStatus").
			Msg("failed to read affected rows count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "transactionRepository.TransitionStatus").
		Int("requested", len(ids)).
		Int64("affected", affected).
		Str("to", string(to)).
		Msg("transitioned transaction notes")

	return affected, nil
}
