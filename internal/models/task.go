package model

import "time"

type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:200;not null" json:"description"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
}

// DateString renders the task date the way the forms expect it.
func (t Task) DateString() string {
	return t.Date.Format("2006-01-02")
}
