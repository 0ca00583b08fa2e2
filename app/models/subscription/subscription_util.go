package subscription

// Status values, pending moves exactly once to active or failed
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusFailed  = "failed"
)

// ActivePeriod duration of an activated subscription
const ActivePeriodDays = 30

// IsPending reports whether the record still awaits its callback
func (s *Subscription) IsPending() bool {
	return s.Status == StatusPending
}

// IsTerminal reports whether the record reached a final state
func (s *Subscription) IsTerminal() bool {
	return s.Status == StatusActive || s.Status == StatusFailed
}
