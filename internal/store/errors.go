package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrTransactionNoteNotFound is returned when a query targets
	// transaction notes that do not exist in the expected status.
	ErrTransactionNoteNotFound = errors.New("transaction note was not found")

	// ErrGiftNoteNotFound is returned when a query or conditional
	// transition targets a gift note that does not exist, or that no
	// longer matches the expected prior status.
	ErrGiftNoteNotFound = errors.New("gift note was not found")

	// ErrDuplicateSecretHash is returned when inserting a gift whose
	// secret hash collides with an existing row. The hash column is
	// unique; a collision means the freshly minted secret must be
	// regenerated.
	ErrDuplicateSecretHash = errors.New("gift secret hash already exists")

	// ErrNoteNotSaved is returned when an INSERT completes without
	// error but no row id comes back, indicating nothing was persisted.
	ErrNoteNotSaved = errors.New("note was not saved")
)

// Low-level database operation errors. These are returned (or wrapped)
// by repository methods when a SQL-level operation fails before any
// domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver
	// cannot start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at
	// this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrScanningRow is returned when scanning column values from a
	// single result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan note rows")
)
