package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orm-lessons/internal/models"
	"orm-lessons/internal/sqlerr"
)

// Fixed filter of GetAllUsers.
var AllowedLanguages = []string{"en", "uk"}

const (
	UserNameFilter = "john"
	UsersPageSize  = 10
)

const addUserSavepoint = "add_user"

// AddUser inserts a user, or when telegramID already exists refreshes only the
// profile fields (full name and username). Language and referrer of an
// existing user are left as they are. The stored row is returned.
func (r *Repo) AddUser(ctx context.Context, telegramID int64, fullName, languageCode string, userName *string, referrerID *int64) (*models.User, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.SavePoint(addUserSavepoint).Error; err != nil {
		return nil, r.abort(fmt.Errorf("add user %d: %w", telegramID, sqlerr.Translate(err)))
	}

	user := models.User{
		TelegramID:   telegramID,
		FullName:     fullName,
		UserName:     userName,
		LanguageCode: languageCode,
		ReferrerID:   referrerID,
	}
	err = tx.Create(&user).Error
	switch {
	case err == nil:
		r.log.Debug().Int64("telegram_id", telegramID).Msg("user inserted")
	case sqlerr.IsUniqueViolation(err, models.UserPrimaryKey):
		if err := tx.RollbackTo(addUserSavepoint).Error; err != nil {
			return nil, r.abort(fmt.Errorf("add user %d: %w", telegramID, sqlerr.Translate(err)))
		}
		if err := updateUserProfile(tx, telegramID, fullName, userName); err != nil {
			return nil, r.abort(fmt.Errorf("add user %d: %w", telegramID, err))
		}
		r.log.Debug().Int64("telegram_id", telegramID).Msg("user exists, profile updated")
	default:
		return nil, r.abort(fmt.Errorf("add user %d: %w", telegramID, sqlerr.Translate(err)))
	}

	var stored models.User
	if err := tx.Where("telegram_id = ?", telegramID).Take(&stored).Error; err != nil {
		return nil, r.abort(fmt.Errorf("add user %d: %w", telegramID, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	return &stored, nil
}

// updateUserProfile is the partial update AddUser applies on conflict.
func updateUserProfile(tx *gorm.DB, telegramID int64, fullName string, userName *string) error {
	err := tx.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Updates(map[string]any{
			"full_name": fullName,
			"username":  userName,
		}).Error
	return sqlerr.Translate(err)
}

// GetUserByID returns nil when no user has telegramID.
func (r *Repo) GetUserByID(ctx context.Context, telegramID int64) (*models.User, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = tx.Where("telegram_id = ?", telegramID).Take(&user).Error
	found := true
	if errors.Is(err, gorm.ErrRecordNotFound) {
		found = false
	} else if err != nil {
		return nil, r.abort(fmt.Errorf("get user %d: %w", telegramID, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// GetAllUsers returns at most UsersPageSize users with a positive id, a
// language in AllowedLanguages and a username containing UserNameFilter
// (case-insensitive), oldest first.
func (r *Repo) GetAllUsers(ctx context.Context) ([]models.User, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = tx.
		Where("language_code IN ?", AllowedLanguages).
		Where("username ILIKE ?", "%"+UserNameFilter+"%").
		Where("telegram_id > ?", 0).
		Group("telegram_id").
		Order("created_at").
		Limit(UsersPageSize).
		Find(&users).Error
	if err != nil {
		return nil, r.abort(fmt.Errorf("get all users: %w", sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserLanguage returns the language code of a user and whether the user
// exists. A configured LanguageCache is consulted first; cache failures are
// logged and the database answers instead.
func (r *Repo) GetUserLanguage(ctx context.Context, telegramID int64) (string, bool, error) {
	if r.languages != nil {
		lang, ok, err := r.languages.Get(ctx, telegramID)
		switch {
		case err != nil:
			r.log.Warn().Err(err).Int64("telegram_id", telegramID).Msg("language cache read failed")
		case ok:
			return lang, true, nil
		}
	}

	tx, err := r.tx(ctx)
	if err != nil {
		return "", false, err
	}

	var langs []string
	err = tx.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Limit(1).
		Pluck("language_code", &langs).Error
	if err != nil {
		return "", false, r.abort(fmt.Errorf("get user language %d: %w", telegramID, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return "", false, err
	}
	if len(langs) == 0 {
		return "", false, nil
	}

	if r.languages != nil {
		if err := r.languages.Set(ctx, telegramID, langs[0]); err != nil {
			r.log.Warn().Err(err).Int64("telegram_id", telegramID).Msg("language cache write failed")
		}
	}
	return langs[0], true, nil
}

// DeleteUser removes a user. Their orders go with them and users they
// referred keep existing with no referrer.
func (r *Repo) DeleteUser(ctx context.Context, telegramID int64) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if err := tx.Where("telegram_id = ?", telegramID).Delete(&models.User{}).Error; err != nil {
		return r.abort(fmt.Errorf("delete user %d: %w", telegramID, sqlerr.Translate(err)))
	}
	if err := r.session.Commit(); err != nil {
		return err
	}

	if r.languages != nil {
		if err := r.languages.Invalidate(ctx, telegramID); err != nil {
			r.log.Warn().Err(err).Int64("telegram_id", telegramID).Msg("language cache invalidation failed")
		}
	}
	return nil
}
