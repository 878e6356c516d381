package models

import "time"

type Advertisement struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Image     string    `json:"image" gorm:"size:2000"`
	URL       string    `json:"url" gorm:"size:2000;not null"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Running reports whether the advertisement should be shown at t.
func (a *Advertisement) Running(t time.Time) bool {
	return a.IsActive && !t.Before(a.StartDate) && t.Before(a.EndDate)
}
