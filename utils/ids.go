package utils

import (
	"fmt"
	"time"
)

// NewMenuID derives a menu id the way the mobile client always has:
// the current unix-millisecond timestamp as a string. Callers own
// uniqueness; a colliding id replaces the stored menu.
func NewMenuID() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// NowMillis is the timestamp unit used across meals, menus and migration
// stamps.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
