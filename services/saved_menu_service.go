package services

import (
	"errors"
	"log/slog"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// SavedMenuService owns the reusable menu templates. Menus live
// independently of any daily log; copying a meal between the two stores
// is two separate writes with no cross-store atomicity.
type SavedMenuService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewSavedMenuService(db *gorm.DB, hub *RealtimeHub) *SavedMenuService {
	return &SavedMenuService{db: db, hub: hub}
}

// List returns the user's menus, newest first.
func (s *SavedMenuService) List(userID uint) ([]models.SavedMenu, error) {
	var menus []models.SavedMenu
	err := s.db.
		Where("user_id = ?", userID).
		Order("menu_created_at DESC").
		Find(&menus).Error
	return menus, err
}

// Subscribe returns the current list plus a live channel re-emitting the
// full ordered list after every menu write. Hub registration precedes
// the list read so a concurrent write is never dropped; at worst it is
// seen twice.
func (s *SavedMenuService) Subscribe(userID uint) (MenuSnapshot, *Subscriber, error) {
	sub := s.hub.Subscribe(SavedMenusTopic(userID))
	menus, err := s.List(userID)
	if err != nil {
		s.hub.Unsubscribe(sub)
		return MenuSnapshot{State: SnapshotLoading}, nil, err
	}
	return MenuSnapshot{State: SnapshotPresent, Menus: menus}, sub, nil
}

func (s *SavedMenuService) Unsubscribe(sub *Subscriber) {
	s.hub.Unsubscribe(sub)
}

// AddMenu stores a menu under its caller-supplied id. The id is the
// storage key: a colliding id replaces the existing menu, so callers own
// uniqueness (ids are timestamp-derived in practice).
func (s *SavedMenuService) AddMenu(userID uint, menu models.SavedMenu) error {
	if userID == 0 {
		return nil
	}
	if menu.MenuID == "" {
		menu.MenuID = utils.NewMenuID()
	}
	if menu.CreatedAtMS == 0 {
		menu.CreatedAtMS = utils.NowMillis()
	}
	menu.UserID = userID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SavedMenu
		err := tx.Where("user_id = ? AND menu_id = ?", userID, menu.MenuID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&menu).Error
		}
		if err != nil {
			return err
		}

		menu.Model = existing.Model
		return tx.Save(&menu).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID)
	return nil
}

// DeleteMenu removes the row for good. A soft delete would keep the id
// in the unique (user_id, menu_id) index and block re-adding a menu
// under the same id.
func (s *SavedMenuService) DeleteMenu(userID uint, menuID string) error {
	if userID == 0 {
		return nil
	}
	err := s.db.Unscoped().
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Delete(&models.SavedMenu{}).Error
	if err != nil {
		return err
	}

	s.publish(userID)
	return nil
}

// UpdateMenu replaces the full record keyed by menu id. Missing ids
// no-op rather than erroring.
func (s *SavedMenuService) UpdateMenu(userID uint, menu models.SavedMenu) error {
	if userID == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SavedMenu
		err := tx.Where("user_id = ? AND menu_id = ?", userID, menu.MenuID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		menu.Model = existing.Model
		menu.UserID = userID
		if menu.CreatedAtMS == 0 {
			menu.CreatedAtMS = existing.CreatedAtMS
		}
		return tx.Save(&menu).Error
	})
	if err != nil {
		return err
	}

	s.publish(userID)
	return nil
}

// RenameMenu updates only name and description; meals and goals stay
// untouched.
func (s *SavedMenuService) RenameMenu(userID uint, menuID, newName, newDescription string) error {
	if userID == 0 {
		return nil
	}
	err := s.db.Model(&models.SavedMenu{}).
		Where("user_id = ? AND menu_id = ?", userID, menuID).
		Updates(map[string]interface{}{"name": newName, "description": newDescription}).Error
	if err != nil {
		return err
	}

	s.publish(userID)
	return nil
}

// Find returns one menu, or nil when it does not exist.
func (s *SavedMenuService) Find(userID uint, menuID string) (*models.SavedMenu, error) {
	var menu models.SavedMenu
	err := s.db.Where("user_id = ? AND menu_id = ?", userID, menuID).First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (s *SavedMenuService) publish(userID uint) {
	menus, err := s.List(userID)
	if err != nil {
		slog.Error("saved menus snapshot failed", "user", userID, "err", err)
		return
	}
	s.hub.Publish(SavedMenusTopic(userID), MenuSnapshot{State: SnapshotPresent, Menus: menus})
}
