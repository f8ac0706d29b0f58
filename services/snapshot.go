package services

import "backend/models"

// SnapshotState makes every consumer's render path exhaustive: a view is
// loading until the first emission, then sees either an absent or a
// present record. No nullable-plus-flag pairs.
type SnapshotState string

const (
	SnapshotLoading SnapshotState = "loading"
	SnapshotAbsent  SnapshotState = "absent"
	SnapshotPresent SnapshotState = "present"
)

// LogSnapshot is one emission of a daily-log subscription.
type LogSnapshot struct {
	State SnapshotState    `json:"state"`
	Log   *models.DailyLog `json:"log,omitempty"`
}

// MenuSnapshot is one emission of a saved-menus subscription, ordered
// newest first.
type MenuSnapshot struct {
	State SnapshotState      `json:"state"`
	Menus []models.SavedMenu `json:"menus"`
}
