// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// owned experience/education collections.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, profileID uint, entry *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, experienceID uint) error
	AddEducation(ctx context.Context, profileID uint, entry *models.Education) error
	RemoveEducation(ctx context.Context, profileID, educationID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withAssociations preloads the user identity and the ordered sub-collections.
// Experience/education entries are returned most recently added first.
func (r *profileRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		err := r.withAssociations(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("There is no profile for this user")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.withAssociations(r.db.WithContext(ctx)).Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Profile already exists for this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	// Omit sub-collections: experience/education mutate through their own ops.
	err := r.db.WithContext(ctx).
		Omit("Experience", "Education", "User").
		Save(profile).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteByUserID removes the profile and its owned collections permanently.
// Account deletion must not leave tombstones behind the user_id unique index.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)

	var profileIDs []uint
	err := db.Unscoped().Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Pluck("id", &profileIDs).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	if len(profileIDs) > 0 {
		if err := db.Where("profile_id IN ?", profileIDs).Delete(&models.Experience{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Where("profile_id IN ?", profileIDs).Delete(&models.Education{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := db.Unscoped().Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return models.NewInternalError(err)
		}
	}

	cache.InvalidateProfile(ctx, userID)
	return nil
}

// invalidateByProfileID drops the cached profile for the owning user after a
// sub-collection mutation.
func (r *profileRepository) invalidateByProfileID(ctx context.Context, profileID uint) {
	var userID uint
	err := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profileID).
		Pluck("user_id", &userID).Error
	if err == nil && userID != 0 {
		cache.InvalidateProfile(ctx, userID)
	}
}

func (r *profileRepository) AddExperience(ctx context.Context, profileID uint, entry *models.Experience) error {
	entry.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, experienceID uint) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Experience{}, experienceID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience entry not found")
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profileID uint, entry *models.Education) error {
	entry.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, educationID uint) error {
	res := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Education{}, educationID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Education entry not found")
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}
