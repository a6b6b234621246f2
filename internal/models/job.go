package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Buyer is the job owner, embedded in the jobs table as buyer_* columns.
type Buyer struct {
	Email string `gorm:"type:varchar(320);not null;index"`
	Name  string `gorm:"type:varchar(255)"`
	Photo string `gorm:"type:text"`
}

type Job struct {
	ID          string         `gorm:"type:varchar(36);primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Deadline    datatypes.Date `gorm:"index"`
	MinPrice    float64        `gorm:"not null;default:0"`
	MaxPrice    float64        `gorm:"not null;default:0"`
	Category    string         `gorm:"type:varchar(64);not null;index"`
	Buyer       Buyer          `gorm:"embedded;embeddedPrefix:buyer_"`
	BidCount    int            `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// DateOf drops the clock part so a deadline round-trips through a DATE
// column unchanged.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DeadlineTime returns the deadline as a UTC time.Time.
func (j Job) DeadlineTime() time.Time {
	return time.Time(j.Deadline).UTC()
}
