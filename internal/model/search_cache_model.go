package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchCacheEntry memoizes one vector search. Entries are replace-or-insert
// by hash and only valid while now < ExpiresAt.
type SearchCacheEntry struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QueryHash     string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	ResultCount   int            `gorm:"not null;default:0"`
	SearchResults datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	ExpiresAt     time.Time      `gorm:"not null;index"`
}

func (SearchCacheEntry) TableName() string {
	return "vector_search_cache"
}
