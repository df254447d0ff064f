// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/midenpay/notewarden/models"
)

// psql builds queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var transactionColumns = []string{
	"id", "sender", "recipient", "assets", "private", "recallable",
	"recallable_at", "serial_number", "status", "created_at", "updated_at",
}

var giftColumns = []string{
	"id", "sender", "assets", "secret_hash", "recallable_at",
	"serial_number", "status", "opened_at", "recalled_at",
	"created_at", "updated_at",
}

// buildSelectTransactionsQuery builds a filtered SELECT over the
// transactions table. Unset filter fields add no predicate. Results are
// newest-first.
func buildSelectTransactionsQuery(filter TransactionFilter) (string, []any, error) {
	builder := psql.Select(transactionColumns...).
		From("transactions").
		OrderBy("created_at DESC")

	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.Sender != "" {
		builder = builder.Where(sq.Eq{"sender": filter.Sender})
	}
	if filter.Recipient != "" {
		builder = builder.Where(sq.Eq{"recipient": filter.Recipient})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Private != nil {
		builder = builder.Where(sq.Eq{"private": *filter.Private})
	}
	if filter.Recallable != nil {
		builder = builder.Where(sq.Eq{"recallable": *filter.Recallable})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertTransactionQuery builds the INSERT for one transaction
// note. The generated id and lifecycle timestamps come back via
// RETURNING so the caller can fill them into the model.
func buildInsertTransactionQuery(note *models.Transaction) (string, []any, error) {
	query, args, err := psql.Insert("transactions").
		Columns("sender", "recipient", "assets", "private", "recallable",
			"recallable_at", "serial_number", "status").
		Values(note.Sender, note.Recipient, note.Assets, note.Private,
			note.Recallable, note.RecallableAt, note.SerialNumber, note.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildTransitionTransactionsQuery builds the conditional bulk status
// transition. Only rows still in the expected prior status are touched;
// the driver's affected-row count is the transition count.
func buildTransitionTransactionsQuery(ids []int64, from, to models.NoteStatus) (string, []any, error) {
	query, args, err := psql.Update("transactions").
		Set("status", to).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"status": from}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSelectGiftsQuery builds a filtered SELECT over the gifts table,
// newest-first.
func buildSelectGiftsQuery(filter GiftFilter) (string, []any, error) {
	builder := psql.Select(giftColumns...).
		From("gifts").
		OrderBy("created_at DESC")

	if filter.ID != 0 {
		builder = builder.Where(sq.Eq{"id": filter.ID})
	}
	if filter.Sender != "" {
		builder = builder.Where(sq.Eq{"sender": filter.Sender})
	}
	if filter.SecretHash != "" {
		builder = builder.Where(sq.Eq{"secret_hash": filter.SecretHash})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertGiftQuery builds the INSERT for one gift note.
func buildInsertGiftQuery(gift *models.Gift) (string, []any, error) {
	query, args, err := psql.Insert("gifts").
		Columns("sender", "assets", "secret_hash", "recallable_at",
			"serial_number", "status").
		Values(gift.Sender, gift.Assets, gift.SecretHash, gift.RecallableAt,
			gift.SerialNumber, gift.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildTransitionGiftQuery builds the single-row conditional transition
// for a gift. The WHERE clause pins the expected prior status
// (StatusPending), so a gift already settled matches nothing and the
// caller sees an empty result instead of a double settlement. The stamp
// lands in opened_at or recalled_at depending on the target status.
func buildTransitionGiftQuery(filter GiftFilter, to models.NoteStatus, stamp time.Time) (string, []any, error) {
	builder := psql.Update("gifts").
		Set("status", to).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"status": models.StatusPending})

	switch to {
	case models.StatusConsumed:
		builder = builder.Set("opened_at", stamp)
	case models.StatusRecalled:
		builder = builder.Set("recalled_at", stamp)
	default:
		return "", nil, fmt.Errorf("%w: gift cannot transition to %q", ErrBuildingSQLQuery, to)
	}

	if filter.ID != 0 {
		builder = builder.Where(sq.Eq{"id": filter.ID})
	}
	if filter.Sender != "" {
		builder = builder.Where(sq.Eq{"sender": filter.Sender})
	}
	if filter.SecretHash != "" {
		builder = builder.Where(sq.Eq{"secret_hash": filter.SecretHash})
	}

	query, args, err := builder.
		Suffix("RETURNING " + giftColumnsList()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func giftColumnsList() string {
	list := giftColumns[0]
	for _, c := range giftColumns[1:] {
		list += ", " + c
	}
	return list
}
