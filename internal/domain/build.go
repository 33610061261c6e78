package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogBuild records one published catalog.
type CatalogBuild struct {
	ID        uuid.UUID  `json:"id"        db:"id"`
	Source    DataSource `json:"source"    db:"source"`
	WordCount int        `json:"wordCount" db:"word_count"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
