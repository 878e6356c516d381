package models

import "time"

type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	BlogID    uint      `json:"blog" gorm:"not null;index"`
	Blog      *Blog     `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ParentID  *uint     `json:"parent" gorm:"index"`
	Parent    *Comment  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
