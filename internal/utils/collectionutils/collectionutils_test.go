package collectionutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssociate(t *testing.T) {
	type user struct {
		id   int64
		name string
	}

	users := []user{{1, "alice"}, {2, "bob"}}
	byID := Associate(users, func(u user) (int64, string) { return u.id, u.name })

	assert.Equal(t, map[int64]string{1: "alice", 2: "bob"}, byID)
}

func TestAssociateLaterItemWins(t *testing.T) {
	items := []string{"a", "b"}
	m := Associate(items, func(s string) (int, string) { return 0, s })

	assert.Equal(t, map[int]string{0: "b"}, m)
}

func TestGroupBy(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	groups := GroupBy(items, func(n int) bool { return n%2 == 0 })

	assert.Equal(t, []int{2, 4}, groups[true])
	assert.Equal(t, []int{1, 3, 5}, groups[false])
}

func TestGetOrDefault(t *testing.T) {
	m := map[string]int64{"a": 1}

	assert.Equal(t, int64(1), GetOrDefault(m, "a", 0))
	assert.Equal(t, int64(0), GetOrDefault(m, "b", 0))
	assert.Equal(t, int64(9), GetOrDefault(m, "c", 9))
}
