package domain

import "time"

type CabinStatus string

const (
	CabinPublished CabinStatus = "published"
	CabinDraft     CabinStatus = "draft"
	CabinArchived  CabinStatus = "archived"
)

type Cabin struct {
	ID           string      `json:"id"`
	Name         string      `json:"name" validate:"required"`
	Slug         string      `json:"cabin_slug"`
	Status       CabinStatus `json:"status"`
	StreamlineID *int64      `json:"streamline_id,omitempty"`
	Bedrooms     int         `json:"bedrooms,omitempty"`
	Bathrooms    int         `json:"bathrooms,omitempty"`
	Sleeps       int         `json:"sleeps,omitempty"`
	Summary      string      `json:"summary,omitempty" gorm:"type:text"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
