package scope

import "gorm.io/gorm"

// OrderByCreatedDesc sorts newest first, used for conversation history
// fetches.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// OrderByCreatedAsc sorts oldest first, used for the escalation queue.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
