package petri_test

import (
	"testing"

	petri "github.com/jt05610/petri-industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceGiveTake(t *testing.T) {
	for _, start := range []int{-2, 0, 1, 7} {
		p := petri.NewPlace(0, 0)
		p.SetTokens(start)
		p.Give()
		p.Take()
		assert.Equal(t, start, p.Tokens())
	}
}

func TestPlaceTakeIsNotClamped(t *testing.T) {
	p := petri.NewPlace(0, 0)
	p.Take()
	assert.Equal(t, -1, p.Tokens())
}

func TestPlaceTokensNotifyOnce(t *testing.T) {
	p := petri.NewPlace(0, 0)
	tokens := 0
	changed := 0
	p.TokensChanged.Subscribe(func() { tokens++ })
	p.Changed.Subscribe(func() { changed++ })
	p.SetTokens(0)
	assert.Zero(t, tokens)
	p.SetTokens(3)
	assert.Equal(t, 1, tokens)
	assert.Equal(t, 1, changed)
}

func TestNodeMoveNotifiesOnce(t *testing.T) {
	p := petri.NewPlace(1, 2)
	n := 0
	p.PositionChanged.Subscribe(func() { n++ })
	p.Move(3, 4)
	assert.Equal(t, 1, n)
	p.Move(3, 4)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3.0, p.X())
	assert.Equal(t, 4.0, p.Y())
}

func TestNodeLabel(t *testing.T) {
	net := petri.New()
	p := petri.NewPlace(0, 0)
	assert.Equal(t, "p?", p.String())
	_, err := net.AddPlace(p)
	require.NoError(t, err)
	assert.Equal(t, "p0", p.String())

	p.SetLabel("buffer")
	p.SetLabelAngle(1)
	p.SetLabelDistance(50)
	assert.Equal(t, "buffer", p.String())

	n := 0
	p.LabelChanged.Subscribe(func() { n++ })
	p.ClearLabel()
	assert.Equal(t, 1, n)
	assert.Equal(t, "", p.Label())
	assert.Equal(t, petri.DefaultLabelAngle, p.LabelAngle())
	assert.Equal(t, petri.DefaultLabelDistance, p.LabelDistance())
	p.ClearLabel()
	assert.Equal(t, 1, n)
}

func TestEntityDeleteIsIdempotent(t *testing.T) {
	p := petri.NewPlace(0, 0)
	deleted := 0
	restored := 0
	p.Deleted.Subscribe(func() { deleted++ })
	p.Restored.Subscribe(func() { restored++ })

	p.Delete()
	p.Delete()
	assert.Equal(t, 1, deleted)
	assert.False(t, p.Active())

	p.Restore()
	p.Restore()
	assert.Equal(t, 1, restored)
	assert.True(t, p.Active())
}
