package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestNoteStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusRecalled.Terminal())
	assert.True(t, StatusConsumed.Terminal())
}

func TestNoteKind_Valid(t *testing.T) {
	assert.True(t, KindTransaction.Valid())
	assert.True(t, KindGift.Valid())
	assert.False(t, NoteKind("red-packet").Valid())
	assert.False(t, NoteKind("").Valid())
}

func TestRecallEligible(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		note     *Transaction
		eligible bool
	}{
		{
			name:     "pending recallable with open window",
			note:     &Transaction{Status: StatusPending, Recallable: true, RecallableAt: timePtr(now.Add(-time.Minute))},
			eligible: true,
		},
		{
			name:     "pending recallable with nil window is immediately eligible",
			note:     &Transaction{Status: StatusPending, Recallable: true},
			eligible: true,
		},
		{
			name:     "window exactly at reference time counts as open",
			note:     &Transaction{Status: StatusPending, Recallable: true, RecallableAt: timePtr(now)},
			eligible: true,
		},
		{
			name:     "window still closed",
			note:     &Transaction{Status: StatusPending, Recallable: true, RecallableAt: timePtr(now.Add(time.Minute))},
			eligible: false,
		},
		{
			name:     "not flagged recallable",
			note:     &Transaction{Status: StatusPending, Recallable: false, RecallableAt: timePtr(now.Add(-time.Minute))},
			eligible: false,
		},
		{
			name:     "already recalled",
			note:     &Transaction{Status: StatusRecalled, Recallable: true},
			eligible: false,
		},
		{
			name:     "already consumed",
			note:     &Transaction{Status: StatusConsumed, Recallable: true},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, RecallEligible(tt.note, now))
		})
	}
}

// Randomized triples: the eligibility predicate must hold for any
// combination of status, flag, window, and reference time.
func TestRecallEligible_RandomizedTriples(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	statuses := []NoteStatus{StatusPending, StatusRecalled, StatusConsumed}

	for i := 0; i < 500; i++ {
		status := statuses[rng.Intn(len(statuses))]
		recallable := rng.Intn(2) == 0

		var at *time.Time
		if rng.Intn(3) > 0 {
			offset := time.Duration(rng.Intn(7200)-3600) * time.Second
			at = timePtr(base.Add(offset))
		}

		now := base.Add(time.Duration(rng.Intn(7200)-3600) * time.Second)
		note := &Transaction{Status: status, Recallable: recallable, RecallableAt: at}

		expected := status == StatusPending && recallable && (at == nil || !at.After(now))
		require.Equal(t, expected, RecallEligible(note, now),
			"status=%s recallable=%v at=%v now=%v", status, recallable, at, now)

		expectedWaiting := status == StatusPending && recallable && at != nil && at.After(now)
		require.Equal(t, expectedWaiting, WaitingToRecall(note, now))
	}
}

func TestGift_AlwaysRecallable(t *testing.T) {
	now := time.Now()

	gift := &Gift{Status: StatusPending, RecallableAt: timePtr(now.Add(-time.Hour))}
	assert.True(t, gift.IsRecallable())
	assert.True(t, RecallEligible(gift, now))

	waiting := &Gift{Status: StatusPending, RecallableAt: timePtr(now.Add(time.Hour))}
	assert.True(t, WaitingToRecall(waiting, now))
	assert.False(t, RecallEligible(waiting, now))

	opened := &Gift{Status: StatusConsumed, RecallableAt: timePtr(now.Add(-time.Hour))}
	assert.False(t, RecallEligible(opened, now))
}
