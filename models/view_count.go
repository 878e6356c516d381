package models

import "time"

type ViewCount struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	BlogID    uint      `json:"blog" gorm:"not null;uniqueIndex:idx_view_counts_blog_ip"`
	Blog      *Blog     `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	IPAddress string    `json:"ip_address" gorm:"size:45;not null;uniqueIndex:idx_view_counts_blog_ip"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"autoCreateTime"`
}
