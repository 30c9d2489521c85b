package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestINClause(t *testing.T) {
	placeholders, args := INClause([]int64{10, 20, 30}, 1)

	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders)
	assert.Equal(t, []any{int64(10), int64(20), int64(30)}, args)
}

func TestINClauseStartIndex(t *testing.T) {
	placeholders, args := INClause([]string{"a", "b"}, 4)

	assert.Equal(t, []string{"$4", "$5"}, placeholders)
	assert.Equal(t, []any{"a", "b"}, args)
}

func TestINClauseEmpty(t *testing.T) {
	placeholders, args := INClause([]int64{}, 1)

	assert.Empty(t, placeholders)
	assert.Empty(t, args)
}
