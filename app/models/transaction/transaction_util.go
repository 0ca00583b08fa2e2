package transaction

// Status values. A record starts pending and moves exactly once to a
// terminal value; terminal records are never written again.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// IsPending reports whether the record still awaits its callback
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// IsTerminal reports whether the record reached a final state
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// IsCompleted reports whether the payment went through
func (t *Transaction) IsCompleted() bool {
	return t.Status == StatusCompleted
}
