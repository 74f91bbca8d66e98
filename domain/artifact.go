package domain

import "time"

// CovisitPair is one edge of the precomputed co-visitation matrix:
// sessions that touched Aid also touched Neighbor, Weight times (decayed).
type CovisitPair struct {
	Aid      int64   `gorm:"column:aid;primaryKey" json:"aid"`
	Neighbor int64   `gorm:"column:neighbor;primaryKey" json:"neighbor"`
	Weight   float64 `gorm:"column:weight;not null" json:"weight"`
}

func (CovisitPair) TableName() string {
	return "covisit_pairs"
}

type ItemPopularity struct {
	Aid   int64 `gorm:"column:aid;primaryKey" json:"aid"`
	Count int64 `gorm:"column:count;not null" json:"count"`
}

func (ItemPopularity) TableName() string {
	return "item_popularity"
}

// FallbackItem is one row of the global top-seller list used to pad thin
// sessions. Rank is 0-based and dense.
type FallbackItem struct {
	Rank int   `gorm:"column:rank;primaryKey" json:"rank"`
	Aid  int64 `gorm:"column:aid;not null" json:"aid"`
}

func (FallbackItem) TableName() string {
	return "fallback_items"
}

// ArtifactVersion tracks which offline pipeline run produced the currently
// loaded tables.
type ArtifactVersion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	BuiltAt   time.Time `gorm:"column:built_at" json:"built_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ArtifactVersion) TableName() string {
	return "artifact_versions"
}
