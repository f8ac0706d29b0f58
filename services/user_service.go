package services

import (
	"errors"

	"backend/models"
	"backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	DisplayName    string         `json:"display_name"`
	ProfilePicture string         `json:"profile_picture"` // base64 data URL
	Settings       datatypes.JSON `json:"settings"`        // free-form UI settings, stored as-is
	Onboarded      *bool          `json:"onboarded"`
}

func (s *UserService) Profile(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND disabled = ?", userID, false).First(&user).Error
	if err != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

// EnsureDefaults seeds the default portion targets on a profile that has
// none yet. Called on every login so first sign-ins get a usable profile
// without an explicit creation step.
func (s *UserService) EnsureDefaults(userID uint) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if len(user.Targets) > 0 {
		return nil
	}
	user.Targets = models.DefaultTargets.Clone()
	return s.db.Save(user).Error
}

func (s *UserService) UpdateProfile(userID uint, input ProfileInput) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return err
		}
		user.PhotoURL = url
	}
	if len(input.Settings) > 0 {
		user.Settings = input.Settings
	}
	if input.Onboarded != nil {
		user.Onboarded = *input.Onboarded
	}

	return s.db.Save(user).Error
}

// UpdateTargets replaces the user's working daily targets. Values are
// portion counts; 0 keeps a category unlimited, negatives are rejected.
func (s *UserService) UpdateTargets(userID uint, targets models.TargetMap) error {
	for cat, v := range targets {
		if v < 0 {
			return errors.New("target for " + cat + " must be >= 0")
		}
	}

	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	user.Targets = targets.Clone()
	return s.db.Save(user).Error
}

func (s *UserService) CompleteOnboarding(userID uint) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	user.Onboarded = true
	return s.db.Save(user).Error
}
