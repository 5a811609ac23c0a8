package petri_test

import (
	"testing"

	petri "github.com/jt05610/petri-industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIDs(t *testing.T) {
	r := petri.NewRegistry[*petri.Place]()
	for want := petri.ID(0); want < 3; want++ {
		id, err := r.Add(petri.NewPlace(0, 0))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	explicit := petri.NewPlace(0, 0)
	require.NoError(t, r.AddWithID(explicit, 10))
	assert.Equal(t, petri.ID(10), explicit.ID())
	assert.Equal(t, petri.ID(11), r.NextID())

	id, err := r.Add(petri.NewPlace(0, 0))
	require.NoError(t, err)
	assert.Equal(t, petri.ID(11), id)

	low := petri.NewPlace(0, 0)
	require.NoError(t, r.AddWithID(low, 5))
	assert.Equal(t, petri.ID(12), r.NextID(), "a lower explicit id does not move the counter back")
}

func TestRegistryRejects(t *testing.T) {
	r := petri.NewRegistry[*petri.Place]()
	p := petri.NewPlace(0, 0)
	require.NoError(t, r.AddWithID(p, 1))

	assert.ErrorIs(t, r.AddWithID(petri.NewPlace(0, 0), -3), petri.ErrInvalidID)
	assert.ErrorIs(t, r.AddWithID(petri.NewPlace(0, 0), 1), petri.ErrDuplicateID)
	assert.ErrorIs(t, r.AddWithID(p, 2), petri.ErrDuplicateID)
	assert.NoError(t, r.AddWithID(p, 1), "adding a member again is a no-op")
	assert.Equal(t, 1, r.Len())

	_, err := r.Get(42)
	assert.ErrorIs(t, err, petri.ErrNotFound)
}

func TestRegistryKeepsDeleted(t *testing.T) {
	r := petri.NewRegistry[*petri.Place]()
	a, b, c := petri.NewPlace(0, 0), petri.NewPlace(0, 0), petri.NewPlace(0, 0)
	for _, p := range []*petri.Place{a, b, c} {
		_, err := r.Add(p)
		require.NoError(t, err)
	}
	b.Delete()

	assert.Equal(t, []*petri.Place{a, c}, r.All())
	assert.Equal(t, 2, r.Len())
	got, err := r.Get(b.ID())
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.True(t, r.Contains(b))

	id, err := r.Add(petri.NewPlace(0, 0))
	require.NoError(t, err)
	assert.Equal(t, petri.ID(3), id, "ids of deleted members are not reused")

	b.Restore()
	assert.Equal(t, []*petri.Place{a, b, c}, r.All()[:3])
}

func TestRegistryNotifications(t *testing.T) {
	r := petri.NewRegistry[*petri.Place]()
	var added []*petri.Place
	changed := 0
	r.Added.Connect(func(p *petri.Place) { added = append(added, p) })
	r.Changed.Subscribe(func() { changed++ })

	p := petri.NewPlace(0, 0)
	_, err := r.Add(p)
	require.NoError(t, err)
	assert.Equal(t, []*petri.Place{p}, added)
	assert.Equal(t, 1, changed)

	p.Give()
	assert.Equal(t, 2, changed)
}

func TestRegistryMerge(t *testing.T) {
	r := petri.NewRegistry[*petri.Place]()
	other := petri.NewRegistry[*petri.Place]()
	_, err := r.Add(petri.NewPlace(0, 0))
	require.NoError(t, err)

	p := petri.NewPlace(0, 0)
	require.NoError(t, other.AddWithID(p, 4))
	gone := petri.NewPlace(0, 0)
	require.NoError(t, other.AddWithID(gone, 5))
	gone.Delete()

	require.NoError(t, r.Merge(other))
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Contains(p))
	assert.False(t, r.Contains(gone))

	clash := petri.NewRegistry[*petri.Place]()
	_, err = clash.Add(petri.NewPlace(0, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, r.Merge(clash), petri.ErrDuplicateID)
}
