package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/stringutils"
	"github.com/mingx/socialnet/models"
)

var hashtagRX = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractHashtags returns the distinct, lowercased #tags found in content,
// in order of first appearance.
func ExtractHashtags(content string) []string {
	matches := hashtagRX.FindAllStringSubmatch(content, -1)

	seen := make(map[string]bool, len(matches))
	var tags []string
	for _, match := range matches {
		name := strings.ToLower(match[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}

	return tags
}

// UpsertHashtags inserts the given names, returning the stored rows whether
// they were just created or already existed.
func (c *Core) UpsertHashtags(ctx context.Context, names []string) ([]*models.Hashtag, error) {
	if len(names) == 0 {
		return []*models.Hashtag{}, nil
	}

	valueStrings := make([]string, 0, len(names))
	valueArgs := make([]any, 0, len(names))
	for i, name := range names {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d)", i+1))
		valueArgs = append(valueArgs, name)
	}

	// ON CONFLICT DO UPDATE rather than DO NOTHING so existing rows are
	// still returned by the RETURNING clause.
	insertSQL := fmt.Sprintf(`
		INSERT INTO hashtags (name)
		VALUES %s
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`, strings.Join(valueStrings, ", "))

	returned, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, insertSQL, scanHashtag, valueArgs...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	// Match returned rows back to the input order in case the database does
	// not preserve it.
	returnedByName := make(map[string]*models.Hashtag, len(returned))
	for _, tag := range returned {
		returnedByName[tag.Name] = tag
	}

	result := make([]*models.Hashtag, 0, len(names))
	for _, name := range names {
		tag, exists := returnedByName[name]
		if !exists {
			return nil, xerrors.Newf("hashtag %s missing from upsert result", name)
		}
		result = append(result, tag)
	}

	return result, nil
}

func scanHashtag(rows *sql.Rows) (*models.Hashtag, error) {
	var tag = &models.Hashtag{}

	if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
		return nil, xerrors.New(err)
	}
	return tag, nil
}

// ReplacePostHashtags makes tags the exact link set for the post: links for
// tags no longer present are removed, missing ones inserted, existing ones
// kept.
func (c *Core) ReplacePostHashtags(ctx context.Context, postID int64, tags []*models.Hashtag) error {
	if len(tags) == 0 {
		const deleteAllSQL = `
			DELETE FROM post_hashtags
			WHERE post_id = $1
		`
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteAllSQL, postID); err != nil {
			return xerrors.New(err)
		}
		return nil
	}

	tagIdList := make([]int64, 0, len(tags))
	for _, tag := range tags {
		tagIdList = append(tagIdList, tag.ID)
	}

	placeholders, args := stringutils.INClause(tagIdList, 2)
	deleteStaleSQL := fmt.Sprintf(`
		DELETE FROM post_hashtags
		WHERE post_id = $1 AND hashtag_id NOT IN (%s)
	`, strings.Join(placeholders, ", "))

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteStaleSQL, append([]any{postID}, args...)...); err != nil {
		return xerrors.New(err)
	}

	const insertSQL = `
		INSERT INTO post_hashtags (post_id, hashtag_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, hashtag_id) DO NOTHING
	`

	for _, tag := range tags {
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, postID, tag.ID); err != nil {
			return xerrors.New(err)
		}
	}

	return nil
}

func (c *Core) ListHashtags(ctx context.Context) ([]*models.Hashtag, error) {
	const query = `
		SELECT id, name
		FROM hashtags
		ORDER BY name
	`

	tags, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanHashtag)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return tags, nil
}

func (c *Core) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	const query = `
		SELECT id, name
		FROM hashtags
		WHERE name = $1
	`

	tag, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanHashtag, strings.ToLower(name))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return tag, nil
}

// GetPostsByHashtag returns the tagged posts, newest first.
func (c *Core) GetPostsByHashtag(ctx context.Context, hashtagID int64) ([]*models.Post, error) {
	const query = `
		SELECT p.id, p.author_id, p.content, p.media, p.created_at
		FROM posts p JOIN post_hashtags ph ON p.id = ph.post_id
		WHERE ph.hashtag_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, hashtagID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}
