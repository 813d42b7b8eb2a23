package game

// MatchStatus represents the lifecycle of a match.
type MatchStatus string

const (
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusCompleted  MatchStatus = "COMPLETED"
)
