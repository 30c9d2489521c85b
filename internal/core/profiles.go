package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanProfile(rows *sql.Rows) (*models.Profile, error) {
	var profile = &models.Profile{}

	if err := rows.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.ProfilePicture,
		&profile.Location,
		&profile.Website,
		&profile.CoverPhoto,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return profile, nil
}

func (c *Core) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	const query = `
		SELECT id, user_id, bio, profile_picture, location, website, cover_photo
		FROM profiles
		WHERE user_id = $1
	`

	profile, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return profile, nil
}

// UpdateProfile rewrites every profile column. Partial updates are resolved
// by the handler against the current profile before calling this.
func (c *Core) UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	const query = `
		UPDATE profiles
		SET bio = $1, profile_picture = $2, location = $3, website = $4, cover_photo = $5
		WHERE user_id = $6
		RETURNING id, user_id, bio, profile_picture, location, website, cover_photo
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanProfile,
		profile.Bio, profile.ProfilePicture, profile.Location, profile.Website, profile.CoverPhoto, profile.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return updated, nil
}
