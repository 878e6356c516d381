package models

import "time"

type ContactMessage struct {
	ID      uint      `json:"id" gorm:"primarykey"`
	Name    string    `json:"name" gorm:"size:100;not null"`
	Email   string    `json:"email" gorm:"size:254;not null"`
	Subject string    `json:"subject" gorm:"size:200"`
	Message string    `json:"message" gorm:"type:text;not null"`
	SentAt  time.Time `json:"sent_at" gorm:"autoCreateTime;index"`
	IsRead  bool      `json:"is_read" gorm:"not null"`
}
