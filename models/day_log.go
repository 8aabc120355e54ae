package models

import (
	"gorm.io/gorm"
)

// DayLog is the per-user, per-calendar-date aggregation root for meals.
// Created lazily on first access to a date, unique on (user, date).
//
// LogDate is carried as a plain YYYY-MM-DD string end to end. Storing it as
// a timestamp caused day-shift bugs in negative-UTC-offset locales when the
// value was serialized, so no time.Time ever leaves this column.
type DayLog struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex:idx_day_logs_user_date;not null" json:"user_id"`
	LogDate string `gorm:"uniqueIndex:idx_day_logs_user_date;type:varchar(10);not null" json:"log_date"`

	Meals []Meal `json:"meals,omitempty"`
}
