package domain

type PaymentStatus string

const (
	// StatusPending выплата поставлена в очередь.
	StatusPending PaymentStatus = "pending"
	// StatusProcessing выплата передана в банк.
	StatusProcessing PaymentStatus = "processing"
	// StatusCompleted деньги переведены.
	StatusCompleted PaymentStatus = "completed"
	// StatusFailed перевод не прошёл.
	StatusFailed PaymentStatus = "failed"
	// StatusCancelled выплата отменена.
	StatusCancelled PaymentStatus = "cancelled"
)

var transitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:    {StatusProcessing, StatusCompleted},
	StatusProcessing: {StatusCompleted},
}

// AllStatuses lists every payment status in lifecycle order.
func AllStatuses() []PaymentStatus {
	return []PaymentStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled}
}

// OpenStatuses are the statuses that block account deletion.
func OpenStatuses() []PaymentStatus {
	return []PaymentStatus{StatusPending, StatusProcessing}
}

func (s PaymentStatus) Valid() bool {
	for _, st := range AllStatuses() {
		if s == st {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether a payment in status s may move to next.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// NormalizeStatuses drops duplicates and falls back to completed for an
// empty filter, so an unfiltered sum never mixes owed and paid money.
func NormalizeStatuses(statuses []PaymentStatus) []PaymentStatus {
	if len(statuses) == 0 {
		return []PaymentStatus{StatusCompleted}
	}
	seen := make(map[PaymentStatus]struct{}, len(statuses))
	out := make([]PaymentStatus, 0, len(statuses))
	for _, s := range statuses {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func StatusStrings(statuses []PaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
