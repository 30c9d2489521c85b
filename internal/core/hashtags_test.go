package core

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mingx/socialnet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"no tags", "just a plain post", nil},
		{"single tag", "learning #golang today", []string{"golang"}},
		{"multiple tags", "#go and #postgres and #go", []string{"go", "postgres"}},
		{"case collapses", "#Go vs #go vs #GO", []string{"go"}},
		{"punctuation delimits", "ship it! #release. done", []string{"release"}},
		{"underscore and digits", "#web_dev #http2", []string{"web_dev", "http2"}},
		{"bare hash ignored", "nothing to see # here", nil},
		{"tag at start and end", "#first middle #last", []string{"first", "last"}},
		{"unicode letters", "#café is open", []string{"café"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.content))
		})
	}
}

func TestExtractHashtagsPreservesFirstAppearanceOrder(t *testing.T) {
	got := ExtractHashtags("#c #b #a #b #c")
	assert.Equal(t, []string{"c", "b", "a"}, got)
}

// Editing a post must drop links for tags no longer in the content, so the
// hashtag listing stops surfacing the post.
func TestReplacePostHashtagsRemovesStaleLinks(t *testing.T) {
	c, _, mock := newMockCore(t)
	tags := []*models.Hashtag{{ID: 5, Name: "go"}, {ID: 6, Name: "postgres"}}

	mock.ExpectExec(`DELETE FROM post_hashtags`).
		WithArgs(int64(7), int64(5), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO post_hashtags`).
		WithArgs(int64(7), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO post_hashtags`).
		WithArgs(int64(7), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.ReplacePostHashtags(context.Background(), 7, tags))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacePostHashtagsClearsAllLinksWhenNoTags(t *testing.T) {
	c, _, mock := newMockCore(t)

	mock.ExpectExec(`DELETE FROM post_hashtags`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, c.ReplacePostHashtags(context.Background(), 7, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
