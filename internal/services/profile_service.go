package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/models"
)

// profileService handles per-user display settings.
type profileService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB, audit AuditServicer) ProfileServicer {
	return &profileService{db: db, audit: auditOrNop(audit)}
}

// GetProfile returns the user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrProfileNotFound)
	}
	return &profile, nil
}

// SaveProfile creates the profile on first save and applies a partial update
// afterwards. The plan is never changed here.
func (s *profileService) SaveProfile(ctx context.Context, userID string, patch forms.ProfilePatch) (*models.Profile, error) {
	existing, err := s.GetProfile(ctx, userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return s.create(ctx, userID, patch)
	}
	if err != nil {
		return nil, err
	}

	res := forms.ValidateProfilePatch(patch)
	if err := validationError(res); err != nil {
		return nil, err
	}
	if len(res.Value) == 0 {
		return existing, nil
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(map[string]interface{}(res.Value)).Error; err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrProfileNotFound)
	}
	s.audit.Log(ctx, userID, AuditUpdate, models.ResourceProfile, existing.ID, res.Value)
	return s.GetProfile(ctx, userID)
}

func (s *profileService) create(ctx context.Context, userID string, patch forms.ProfilePatch) (*models.Profile, error) {
	in := forms.ProfileInput{
		DisplayName:    deref(patch.DisplayName),
		Currency:       deref(patch.Currency),
		Language:       deref(patch.Language),
		DarkMode:       patch.DarkMode,
		LanguageChosen: patch.LanguageChosen,
	}
	res := forms.ValidateProfile(in)
	if err := validationError(res); err != nil {
		return nil, err
	}

	profile := &models.Profile{UserID: userID, Plan: models.PlanFree}
	res.Value.Apply(profile)

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrProfileNotFound)
	}
	return profile, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
