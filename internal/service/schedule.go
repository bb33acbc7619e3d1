package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"defiant-meals-backend/internal/model"
	"defiant-meals-backend/internal/repository"

	"gorm.io/gorm"
)

// slotInterval is the granularity of bookable pickup slots within a window.
const slotInterval = 30 * time.Minute

type ScheduleService interface {
	GetWeek(ctx context.Context) ([]*model.ScheduleDay, error)
	UpdateDay(ctx context.Context, day *model.ScheduleDay) error
	// SlotsForDate expands the weekday's time windows into "HH:MM-HH:MM"
	// slots customers can pick from. A closed or unconfigured day yields an
	// empty list.
	SlotsForDate(ctx context.Context, date time.Time) ([]string, error)
}

type scheduleServiceImpl struct {
	scheduleRepo repository.ScheduleRepository
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository) ScheduleService {
	return &scheduleServiceImpl{
		scheduleRepo: scheduleRepo,
	}
}

func (s *scheduleServiceImpl) GetWeek(ctx context.Context) ([]*model.ScheduleDay, error) {
	return s.scheduleRepo.GetWeek(ctx)
}

func (s *scheduleServiceImpl) UpdateDay(ctx context.Context, day *model.ScheduleDay) error {
	if day.Weekday < 0 || day.Weekday > 6 {
		return fmt.Errorf("weekday must be 0-6, got %d", day.Weekday)
	}
	for _, w := range day.Windows {
		if _, err := time.Parse("15:04", w.Start); err != nil {
			return fmt.Errorf("invalid window start %q", w.Start)
		}
		if _, err := time.Parse("15:04", w.End); err != nil {
			return fmt.Errorf("invalid window end %q", w.End)
		}
	}

	return s.scheduleRepo.UpsertDay(ctx, day)
}

func (s *scheduleServiceImpl) SlotsForDate(ctx context.Context, date time.Time) ([]string, error) {
	day, err := s.scheduleRepo.FindByWeekday(ctx, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if !day.Open {
		return []string{}, nil
	}

	var slots []string
	for _, w := range day.Windows {
		start, err := time.Parse("15:04", w.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", w.End)
		if err != nil {
			continue
		}
		for t := start; t.Add(slotInterval).Before(end) || t.Add(slotInterval).Equal(end); t = t.Add(slotInterval) {
			slots = append(slots, fmt.Sprintf("%s-%s",
				t.Format("15:04"),
				t.Add(slotInterval).Format("15:04"),
			))
		}
	}

	return slots, nil
}
