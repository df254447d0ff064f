// SPDX-License-Identifier: Apache-2.0

package models

// RecallBatchItem addresses one note inside a mixed-kind recall batch.
type RecallBatchItem struct {
	Kind NoteKind `json:"type"`
	ID   int64    `json:"id"`
}

// RecallBatchRequest is the ordered item sequence of a batch recall.
type RecallBatchRequest struct {
	Items []RecallBatchItem `json:"items"`
}

// RecallBatchItemResult reports the outcome of a single batch item.
// One item failing never affects its neighbours; Error carries the
// human-readable reason when Success is false.
type RecallBatchItemResult struct {
	Kind    NoteKind `json:"type"`
	ID      int64    `json:"id"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
}

// RecallBatchResponse holds per-item results in input order.
type RecallBatchResponse struct {
	Results []RecallBatchItemResult `json:"results"`
}
