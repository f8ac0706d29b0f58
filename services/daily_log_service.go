package services

import (
	"errors"
	"log/slog"

	"backend/models"

	"gorm.io/gorm"
)

// DailyLogService owns the one authoritative record per (user, date).
// Concurrent sessions resolve by last-write-wins at row granularity; the
// service does no application-level merging. Writes without an
// authenticated user (userID 0) are silent no-ops so unauthenticated
// flows can fall back to local storage at the page layer. Meals are
// addressed by id, never by value equality.
type DailyLogService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewDailyLogService(db *gorm.DB, hub *RealtimeHub) *DailyLogService {
	return &DailyLogService{db: db, hub: hub}
}

// Get returns the log for a date, or nil when none exists yet.
func (s *DailyLogService) Get(userID uint, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// History lists every logged day, newest first.
func (s *DailyLogService) History(userID uint) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error
	return logs, err
}

// Subscribe returns the current snapshot plus a live channel that emits
// a fresh snapshot after every write to the record, including writes
// from the user's other sessions. The hub registration happens before
// the snapshot read: a write landing in between shows up twice (in the
// snapshot and as an emission), never zero times. Callers must
// Unsubscribe on teardown.
func (s *DailyLogService) Subscribe(userID uint, date string) (LogSnapshot, *Subscriber, error) {
	sub := s.hub.Subscribe(DailyLogTopic(userID, date))
	snap, err := s.snapshot(userID, date)
	if err != nil {
		s.hub.Unsubscribe(sub)
		return LogSnapshot{State: SnapshotLoading}, nil, err
	}
	return snap, sub, nil
}

func (s *DailyLogService) Unsubscribe(sub *Subscriber) {
	s.hub.Unsubscribe(sub)
}

// AddMeal appends a meal to the date's list, creating the record lazily.
// When goals are supplied they overwrite the record's goal set; this is
// how the first meal of a day stamps it with the user's working targets.
func (s *DailyLogService) AddMeal(userID uint, date string, meal models.Meal, goals models.TargetMap) error {
	if userID == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var log models.DailyLog
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.DailyLog{UserID: userID, Date: date, Meals: models.MealList{meal}}
			if goals != nil {
				log.Goals = goals.Clone()
			}
			return tx.Create(&log).Error
		}
		if err != nil {
			return err
		}

		log.Meals = append(log.Meals, meal)
		if goals != nil {
			log.Goals = goals.Clone()
		}
		return tx.Save(&log).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID, date)
	return nil
}

// DeleteMeal removes the meal with the given id. The record itself is
// kept even when its meal list empties. A missing id is a no-op.
func (s *DailyLogService) DeleteMeal(userID uint, date, mealID string) error {
	if userID == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var log models.DailyLog
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		kept := make(models.MealList, 0, len(log.Meals))
		for _, m := range log.Meals {
			if m.ID != mealID {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(log.Meals) {
			return nil
		}
		log.Meals = kept
		return tx.Save(&log).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID, date)
	return nil
}

// UpdateMeal replaces the list entry whose id matches. No-op otherwise.
func (s *DailyLogService) UpdateMeal(userID uint, date string, updated models.Meal) error {
	if userID == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var log models.DailyLog
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		changed := false
		for i := range log.Meals {
			if log.Meals[i].ID == updated.ID {
				log.Meals[i] = updated
				changed = true
				break
			}
		}
		if !changed {
			return nil
		}
		return tx.Save(&log).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID, date)
	return nil
}

// UpdateGoals upserts only the goal set, preserving the meal list.
func (s *DailyLogService) UpdateGoals(userID uint, date string, goals models.TargetMap) error {
	if userID == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var log models.DailyLog
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log = models.DailyLog{UserID: userID, Date: date, Goals: goals.Clone(), Meals: models.MealList{}}
			return tx.Create(&log).Error
		}
		if err != nil {
			return err
		}

		log.Goals = goals.Clone()
		return tx.Save(&log).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID, date)
	return nil
}

func (s *DailyLogService) snapshot(userID uint, date string) (LogSnapshot, error) {
	log, err := s.Get(userID, date)
	if err != nil {
		return LogSnapshot{State: SnapshotLoading}, err
	}
	if log == nil {
		return LogSnapshot{State: SnapshotAbsent}, nil
	}
	return LogSnapshot{State: SnapshotPresent, Log: log}, nil
}

func (s *DailyLogService) publish(userID uint, date string) {
	snap, err := s.snapshot(userID, date)
	if err != nil {
		slog.Error("daily log snapshot failed", "user", userID, "date", date, "err", err)
		return
	}
	s.hub.Publish(DailyLogTopic(userID, date), snap)
}
