package repository

import (
	"context"
	"time"

	"defiant-meals-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScheduleRepository interface {
	GetWeek(ctx context.Context) ([]*model.ScheduleDay, error)
	FindByWeekday(ctx context.Context, weekday int) (*model.ScheduleDay, error)
	UpsertDay(ctx context.Context, day *model.ScheduleDay) error
}

type scheduleRepoImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepoImpl{
		db: db,
	}
}

func (r *scheduleRepoImpl) GetWeek(ctx context.Context) ([]*model.ScheduleDay, error) {
	var days []*model.ScheduleDay
	err := r.db.WithContext(ctx).
		Order("weekday").
		Find(&days).Error

	if err != nil {
		return nil, err
	}

	return days, nil
}

func (r *scheduleRepoImpl) FindByWeekday(ctx context.Context, weekday int) (*model.ScheduleDay, error) {
	var day model.ScheduleDay
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&day).Error

	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (r *scheduleRepoImpl) UpsertDay(ctx context.Context, day *model.ScheduleDay) error {
	day.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "windows", "updated_at"}),
	}).Create(day).Error
}
