package services

import (
	"context"

	"nutritracker/models"
	"nutritracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DayLogService struct{ db *gorm.DB }

func NewDayLogService(db *gorm.DB) *DayLogService { return &DayLogService{db: db} }

// GetOrCreate returns the day log for (user, date), creating it on first
// access. The insert is conflict-protected on the (user_id, log_date)
// unique index, so concurrent first accesses still end up with one row.
func (s *DayLogService) GetOrCreate(ctx context.Context, userID uint, date string) (*models.DayLog, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, ErrInvalidInput
	}

	log := models.DayLog{UserID: userID, LogDate: date}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&log).Error; err != nil {
		return nil, err
	}

	// Re-read so the DoNothing path returns the existing row.
	var out models.DayLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, date).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DayLogService) GetByID(ctx context.Context, userID, dayLogID uint) (*models.DayLog, error) {
	var log models.DayLog
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", dayLogID, userID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Week returns the 7 day logs for [start, start+6], creating missing days.
func (s *DayLogService) Week(ctx context.Context, userID uint, start string) ([]models.DayLog, error) {
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return nil, ErrInvalidInput
	}

	days := make([]models.DayLog, 0, 7)
	for i := 0; i < 7; i++ {
		date := startDay.AddDate(0, 0, i).Format(utils.DateLayout)
		log, err := s.GetOrCreate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, *log)
	}
	return days, nil
}
