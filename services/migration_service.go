package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// MigrationService moves legacy local-only logs and menus into the cloud
// store on first sign-in. The whole batch commits or none of it does;
// local data is only cleared after a successful commit, so a failed run
// is safely retryable. Retrying after the keys were cleared can at worst
// duplicate menus whose legacy records had no id (fresh timestamp ids
// are derived for those). Best-effort, not exactly-once.
type MigrationService struct {
	db    *gorm.DB
	store LocalStore
	hub   *RealtimeHub
}

func NewMigrationService(db *gorm.DB, store LocalStore, hub *RealtimeHub) *MigrationService {
	return &MigrationService{db: db, store: store, hub: hub}
}

// HasLocalData reports whether any legacy record is waiting to migrate.
func (s *MigrationService) HasLocalData(ctx context.Context) (bool, error) {
	for _, key := range []string{KeyDailyLogs, KeySavedMenus} {
		ok, err := s.store.Exists(ctx, key)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type legacyLog struct {
	Goals models.TargetMap `json:"goals"`
	Meals models.MealList  `json:"meals"`
}

type legacyMenu struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Goals       models.TargetMap `json:"goals"`
	Meals       models.MealList  `json:"meals"`
	CreatedAt   int64            `json:"createdAt"`
}

// Migrate writes every legacy log and menu as cloud records, stamped
// with a migration timestamp. Returns the number of records written.
func (s *MigrationService) Migrate(ctx context.Context, userID uint) (int, error) {
	if userID == 0 {
		return 0, nil
	}

	rawLogs, err := s.store.Get(ctx, KeyDailyLogs)
	if err != nil {
		return 0, err
	}
	rawMenus, err := s.store.Get(ctx, KeySavedMenus)
	if err != nil {
		return 0, err
	}

	logs := map[string]legacyLog{}
	if rawLogs != "" {
		if err := json.Unmarshal([]byte(rawLogs), &logs); err != nil {
			return 0, fmt.Errorf("unreadable legacy daily logs: %w", err)
		}
	}
	menus := []legacyMenu{}
	if rawMenus != "" {
		if err := json.Unmarshal([]byte(rawMenus), &menus); err != nil {
			return 0, fmt.Errorf("unreadable legacy menus: %w", err)
		}
	}

	if len(logs) == 0 && len(menus) == 0 {
		return 0, nil
	}

	now := utils.NowMillis()
	count := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for date, l := range logs {
			row := models.DailyLog{
				UserID:     userID,
				Date:       date,
				Goals:      l.Goals,
				Meals:      l.Meals,
				MigratedAt: now,
			}

			var existing models.DailyLog
			ferr := tx.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
			if ferr == nil {
				row.Model = existing.Model
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			} else if err := tx.Create(&row).Error; err != nil {
				return err
			}
			count++
		}

		for _, m := range menus {
			menuID := m.ID
			if menuID == "" {
				menuID = utils.NewMenuID()
			}
			createdAt := m.CreatedAt
			if createdAt == 0 {
				createdAt = now
			}
			row := models.SavedMenu{
				UserID:      userID,
				MenuID:      menuID,
				Name:        m.Name,
				Description: m.Description,
				Goals:       m.Goals,
				Meals:       m.Meals,
				CreatedAtMS: createdAt,
				MigratedAt:  now,
			}

			var existing models.SavedMenu
			ferr := tx.Where("user_id = ? AND menu_id = ?", userID, menuID).First(&existing).Error
			if ferr == nil {
				row.Model = existing.Model
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			} else if err := tx.Create(&row).Error; err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// Clear only after commit. A failure here leaves stale local copies
	// behind, which a retry will re-upload; it never loses data.
	if err := s.store.Delete(ctx, KeyDailyLogs, KeySavedMenus); err != nil {
		slog.Warn("migrated but failed to clear local keys", "user", userID, "err", err)
	}

	s.migrateProfileKeys(ctx, userID)

	var allMenus []models.SavedMenu
	if err := s.db.Where("user_id = ?", userID).Order("menu_created_at DESC").Find(&allMenus).Error; err == nil {
		s.hub.Publish(SavedMenusTopic(userID), MenuSnapshot{State: SnapshotPresent, Menus: allMenus})
	}
	slog.Info("legacy data migrated", "user", userID, "records", count)
	return count, nil
}

// migrateProfileKeys folds the pre-login working state into the profile:
// locally stored targets seed an empty profile and a local onboarding
// flag marks the profile onboarded. Best-effort; the profile write is
// independent of the log/menu batch.
func (s *MigrationService) migrateProfileKeys(ctx context.Context, userID uint) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return
	}
	changed := false

	if raw, err := s.store.Get(ctx, KeyUserTargets); err == nil && raw != "" {
		var targets models.TargetMap
		if json.Unmarshal([]byte(raw), &targets) == nil && len(user.Targets) == 0 {
			user.Targets = targets
			changed = true
		}
	}
	if flag, err := s.store.Get(ctx, KeyOnboardingKey); err == nil && flag != "" && !user.Onboarded {
		user.Onboarded = true
		changed = true
	}

	if changed {
		if err := s.db.Save(&user).Error; err != nil {
			slog.Warn("profile key migration failed", "user", userID, "err", err)
			return
		}
	}
	if err := s.store.Delete(ctx, KeyUserTargets, KeyUserGoals, KeyOnboardingKey); err != nil {
		slog.Warn("failed to clear local profile keys", "user", userID, "err", err)
	}
}
