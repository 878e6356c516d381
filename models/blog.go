package models

import (
	"time"
)

type Blog struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"title" gorm:"size:255;uniqueIndex;not null"`
	Slug        string     `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	AuthorID    uint       `json:"author_id" gorm:"not null;index"`
	Author      User       `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CategoryID  *uint      `json:"category_id" gorm:"index"`
	Category    *Category  `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags        []Tag      `json:"tags" gorm:"many2many:blog_tags;constraint:OnDelete:CASCADE"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Image       string     `json:"image"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	IsFeatured  bool       `json:"is_featured" gorm:"not null"`
	IsPublished bool       `json:"is_published" gorm:"not null;index"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetPublished moves the blog between draft and published. published_at is
// stamped on the draft->published edge only and cleared on unpublish.
func (b *Blog) SetPublished(published bool, now time.Time) {
	if published {
		if b.PublishedAt == nil {
			stamp := now
			b.PublishedAt = &stamp
		}
	} else {
		b.PublishedAt = nil
	}
	b.IsPublished = published
}

func (b *Blog) Visible() bool {
	return b.IsPublished && b.IsActive
}
