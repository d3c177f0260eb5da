package hub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/hub"
)

func TestModules(t *testing.T) {
	got := hub.Modules()
	require.Len(t, got, 11)

	assert.Equal(t, "finance", got[0].ID)
	assert.Equal(t, "organization", got[1].ID)

	for _, m := range got[2:] {
		assert.False(t, m.Active, m.ID)
		assert.Empty(t, m.Links, m.ID)
	}

	got[0].Title = "changed"
	assert.Equal(t, "Finance", hub.Modules()[0].Title)
}

func TestFind(t *testing.T) {
	m, ok := hub.Find("organization")
	require.True(t, ok)
	assert.Len(t, m.Links, 5)

	_, ok = hub.Find("crm")
	assert.False(t, ok)
}

func TestGreeting(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 6, 1, h, 30, 0, 0, time.UTC) }

	assert.Equal(t, "Good morning", hub.Greeting(at(11)))
	assert.Equal(t, "Good afternoon", hub.Greeting(at(12)))
	assert.Equal(t, "Good afternoon", hub.Greeting(at(17)))
	assert.Equal(t, "Good evening", hub.Greeting(at(18)))
}
