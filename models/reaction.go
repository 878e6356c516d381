package models

import "time"

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes is the enumerated set in display order.
var ReactionTypes = []ReactionType{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

func (t ReactionType) Valid() bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Reaction struct {
	ID        uint         `json:"id" gorm:"primarykey"`
	BlogID    uint         `json:"blog" gorm:"not null;uniqueIndex:idx_reactions_blog_user"`
	Blog      *Blog        `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	UserID    uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_reactions_blog_user"`
	User      *User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Type      ReactionType `json:"type" gorm:"size:10;not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReactionCounts is a histogram over every reaction type, zero-filled.
type ReactionCounts map[ReactionType]int64

func NewReactionCounts() ReactionCounts {
	counts := make(ReactionCounts, len(ReactionTypes))
	for _, t := range ReactionTypes {
		counts[t] = 0
	}
	return counts
}

func (c ReactionCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}
