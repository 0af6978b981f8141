// Package crud wraps gorm access to users, mood entries and their
// AI analyses. Services and controllers depend on it instead of
// touching the database directly.
package crud

import "errors"

// ErrNotFound is returned when a referenced user or entry does not
// exist. It is the only store error callers are expected to branch on.
var ErrNotFound = errors.New("record not found")
