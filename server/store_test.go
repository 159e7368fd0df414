package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUserStore(t *testing.T) {
	store := NewInMemoryUserStore[int, int]()

	_, ok := store.Read("peggy")
	assert.False(t, ok)
	assert.False(t, store.Update("peggy", &User[int]{Username: "peggy"}))

	store.Create(&User[int]{Username: "peggy", Y1: 6, Y2: 18})
	u, ok := store.Read("peggy")
	require.True(t, ok)
	assert.Equal(t, 6, u.Y1)

	// Create upserts.
	store.Create(&User[int]{Username: "peggy", Y1: 7, Y2: 19})
	u, _ = store.Read("peggy")
	assert.Equal(t, 7, u.Y1)

	r1 := 2
	u.R1 = &r1
	assert.True(t, store.Update("peggy", u))
	u, _ = store.Read("peggy")
	require.NotNil(t, u.R1)
	assert.Equal(t, 2, *u.R1)

	deleted, ok := store.Delete("peggy")
	require.True(t, ok)
	assert.Equal(t, "peggy", deleted.Username)
	_, ok = store.Read("peggy")
	assert.False(t, ok)
	_, ok = store.Delete("peggy")
	assert.False(t, ok)
}

func TestInMemoryChallengeStore(t *testing.T) {
	store := NewInMemoryUserStore[int, int]()

	id1 := store.CreateAuthChallenge("peggy", 5)
	id2 := store.CreateAuthChallenge("peggy", 9)
	assert.NotEqual(t, id1, id2)

	ch, ok := store.GetAuthChallenge(id1)
	require.True(t, ok)
	assert.Equal(t, "peggy", ch.Username)
	assert.Equal(t, 5, ch.C)

	store.DeleteAuthChallenge(id1)
	_, ok = store.GetAuthChallenge(id1)
	assert.False(t, ok)
	_, ok = store.GetAuthChallenge(id2)
	assert.True(t, ok)

	// Deleting an absent challenge is a no-op.
	store.DeleteAuthChallenge(id1)
}
