package constants

import "strings"

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusSubmitted  TaskStatus = "SUBMITTED"
	StatusApproved   TaskStatus = "APPROVED"
	StatusCancelled  TaskStatus = "CANCELLED"
)

// StatusOrder lists the forward path of the lifecycle. CANCELLED sits
// outside the path and is reachable from any non-terminal status.
var StatusOrder = []TaskStatus{
	StatusPending,
	StatusInProgress,
	StatusSubmitted,
	StatusApproved,
}

// AllStatuses is the canonical enum ordering used for stable output.
var AllStatuses = []TaskStatus{
	StatusPending,
	StatusInProgress,
	StatusSubmitted,
	StatusApproved,
	StatusCancelled,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusSubmitted, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s TaskStatus) Terminal() bool {
	return s == StatusApproved || s == StatusCancelled
}

// Rank returns the position of s along the forward path, or -1 for
// CANCELLED and unknown values.
func (s TaskStatus) Rank() int {
	for i, st := range StatusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus maps any accepted external representation of a status
// (mixed case, space/hyphen/underscore delimiters) to the canonical
// enum. All ingestion paths must go through here so that only the
// canonical form exists past the store boundary.
func ParseStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(normalizeEnumToken(raw))
	if !s.Valid() {
		return "", false
	}
	return s, true
}

func normalizeEnumToken(raw string) string {
	t := strings.TrimSpace(strings.ToUpper(raw))
	t = strings.ReplaceAll(t, "-", "_")
	t = strings.ReplaceAll(t, " ", "_")
	return t
}
