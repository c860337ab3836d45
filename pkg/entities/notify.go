package entities

import (
	"time"

	"gorm.io/gorm"
)

// AnnouncementLog records every WhatsApp broadcast sent to the squad.
type AnnouncementLog struct {
	gorm.Model
	UserID  uint      `json:"user_id" gorm:"not null;index"`
	TeamID  uint      `json:"team_id" gorm:"not null"`
	Kind    string    `json:"kind" gorm:"type:varchar(50)"` // convocation, reminder
	Content string    `json:"content" gorm:"type:text"`
	Sent    uint      `json:"sent"`
	Failed  uint      `json:"failed"`
	SentAt  time.Time `json:"sent_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
	Team Team `json:"team" gorm:"foreignKey:TeamID"`
}
