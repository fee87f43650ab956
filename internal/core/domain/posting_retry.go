package domain

import "time"

// PostingRetryStatus is the lifecycle state of an expense posting retry.
type PostingRetryStatus string

const (
	RetryPending PostingRetryStatus = "PENDING"
	RetryDone    PostingRetryStatus = "DONE"
	RetryDead    PostingRetryStatus = "DEAD"
)

// ExpensePostingRetry is an outbox record written alongside an expense that
// could not be posted at creation time.
type ExpensePostingRetry struct {
	RetryID       string             `json:"retryID"`
	ExpenseID     string             `json:"expenseID"`
	Status        PostingRetryStatus `json:"status"`
	Attempts      int                `json:"attempts"`
	LastError     string             `json:"lastError"`
	NextAttemptAt time.Time          `json:"nextAttemptAt"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
