package petri_test

import (
	"errors"
	"fmt"
	"testing"

	petri "github.com/jt05610/petri-industry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// pick always returns the same index, wrapped into range.
type pick int

func (p pick) Intn(n int) int { return int(p) % n }

func addPlace(t *testing.T, n *petri.Net, tokens int) *petri.Place {
	t.Helper()
	p := petri.NewPlace(0, 0)
	p.SetTokens(tokens)
	_, err := n.AddPlace(p)
	require.NoError(t, err)
	return p
}

func addTransition(t *testing.T, n *petri.Net) *petri.Transition {
	t.Helper()
	tr := petri.NewTransition(0, 0)
	_, err := n.AddTransition(tr)
	require.NoError(t, err)
	return tr
}

func connect(t *testing.T, n *petri.Net, typ petri.ArrowType, p *petri.Place, tr *petri.Transition) *petri.Arrow {
	t.Helper()
	a, err := n.Connect(typ, p, tr)
	require.NoError(t, err)
	return a
}

func TestTransitionWithoutInputsIsEnabled(t *testing.T) {
	tr := petri.NewTransition(0, 0)
	assert.True(t, tr.CheckEnabled())
	assert.True(t, tr.IsSource())
	assert.True(t, tr.IsSink())

	n := petri.New()
	p := addPlace(t, n, 0)
	_, err := n.AddTransition(tr)
	require.NoError(t, err)
	connect(t, n, petri.OutputArrow, p, tr)
	p.SetTokens(-4)
	assert.True(t, tr.CheckEnabled())
	assert.False(t, tr.IsSink())
}

func TestInputTokenEnables(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	connect(t, n, petri.InputArrow, p, tr)

	assert.False(t, tr.CheckEnabled())
	assert.False(t, tr.IsSource())
	p.Give()
	assert.True(t, tr.CheckEnabled())
	require.NoError(t, n.Trigger(tr))
	assert.Equal(t, 0, p.Tokens())
	assert.False(t, tr.Enabled())
}

func TestEmptyNetDeadlock(t *testing.T) {
	n := petri.New()
	assert.True(t, n.Deadlock())
	addTransition(t, n)
	assert.False(t, n.Deadlock())
}

func TestChainFiresRandomly(t *testing.T) {
	n := petri.New(petri.WithChooser(pick(0)))
	p1 := addPlace(t, n, 0)
	tr := addTransition(t, n)
	p2 := addPlace(t, n, 0)
	connect(t, n, petri.InputArrow, p1, tr)
	connect(t, n, petri.OutputArrow, p2, tr)

	assert.True(t, n.Deadlock())
	p1.Give()
	assert.False(t, n.Deadlock())

	fired, err := n.TriggerRandom()
	require.NoError(t, err)
	assert.Same(t, tr, fired)
	assert.Equal(t, 0, p1.Tokens())
	assert.Equal(t, 1, p2.Tokens())
	assert.True(t, n.Deadlock())
}

func TestDeletePlaceCascades(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	a := connect(t, n, petri.InputArrow, p, tr)
	require.Equal(t, petri.RegisteredInput, a.State())
	require.False(t, tr.Enabled())

	p.Delete()
	assert.Equal(t, petri.Removed, a.State())
	assert.False(t, a.Active())
	assert.Empty(t, tr.Inputs())
	assert.True(t, tr.IsSource())
	assert.True(t, tr.Enabled())
	assert.False(t, n.Deadlock())
	assert.Equal(t, 0, n.Inputs.Len())

	// the arrow stays addressable by id
	got, err := n.Inputs.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestArrowStateMachine(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 1)
	tr := addTransition(t, n)

	in := connect(t, n, petri.InputArrow, p, tr)
	out := connect(t, n, petri.OutputArrow, p, tr)
	assert.Equal(t, petri.RegisteredInput, in.State())
	assert.Equal(t, petri.RegisteredOutput, out.State())
	assert.Equal(t, []*petri.Place{p}, tr.Inputs())
	assert.Equal(t, []*petri.Place{p}, tr.Outputs())

	in.Delete()
	assert.Equal(t, petri.Removed, in.State())
	assert.Equal(t, "deleted", in.State().String())
	assert.Empty(t, tr.Inputs())
	assert.Equal(t, []*petri.Place{p}, tr.Outputs())

	in.Restore()
	assert.Equal(t, petri.RegisteredInput, in.State())
	assert.Equal(t, []*petri.Place{p}, tr.Inputs())

	tr.Delete()
	assert.Equal(t, petri.Removed, in.State())
	assert.Equal(t, petri.Removed, out.State())
	assert.Empty(t, tr.Outputs())
}

func TestArrowFollowsInputTokens(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	a := connect(t, n, petri.InputArrow, p, tr)

	a.Delete()
	p.Give()
	assert.True(t, tr.Enabled())
	p.Take()
	assert.True(t, tr.Enabled(), "a removed input no longer gates the transition")

	a.Restore()
	assert.False(t, tr.Enabled())
	p.Give()
	assert.True(t, tr.Enabled())
}

func TestNewArrowRejectsUnknownType(t *testing.T) {
	_, err := petri.NewArrow(petri.ArrowType(7), petri.NewPlace(0, 0), petri.NewTransition(0, 0))
	assert.ErrorIs(t, err, petri.ErrUnknownArrowType)
}

func TestConnectValidation(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)

	first := connect(t, n, petri.InputArrow, p, tr)
	_, err := n.Connect(petri.InputArrow, p, tr)
	assert.ErrorIs(t, err, petri.ErrDuplicateArrow)
	assert.Equal(t, []*petri.Place{p}, tr.Inputs(), "a rejected arrow leaves no trace")

	first.Delete()
	connect(t, n, petri.InputArrow, p, tr)

	_, err = n.Connect(petri.InputArrow, petri.NewPlace(0, 0), tr)
	assert.ErrorIs(t, err, petri.ErrForeignNode)
	_, err = n.Connect(petri.OutputArrow, p, petri.NewTransition(0, 0))
	assert.ErrorIs(t, err, petri.ErrForeignNode)

	q := addPlace(t, n, 0)
	q.Delete()
	_, err = n.Connect(petri.OutputArrow, q, tr)
	assert.ErrorIs(t, err, petri.ErrInactive)
}

func TestTriggerErrors(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	connect(t, n, petri.InputArrow, p, tr)

	err := n.Trigger(tr)
	assert.ErrorIs(t, err, petri.ErrNotEnabled)
	assert.Equal(t, 0, p.Tokens())

	p.Give()
	tr.Delete()
	assert.ErrorIs(t, n.Trigger(tr), petri.ErrInactive)
	assert.Equal(t, 1, p.Tokens())

	assert.ErrorIs(t, n.Trigger(petri.NewTransition(0, 0)), petri.ErrForeignNode)
}

func TestTriggerRandomUsesChooser(t *testing.T) {
	n := petri.New(petri.WithChooser(pick(1)))
	var outs []*petri.Place
	for i := 0; i < 3; i++ {
		tr := addTransition(t, n)
		out := addPlace(t, n, 0)
		connect(t, n, petri.OutputArrow, out, tr)
		outs = append(outs, out)
	}
	var fired []*petri.Transition
	n.Fired.Connect(func(tr *petri.Transition) { fired = append(fired, tr) })

	tr, err := n.TriggerRandom()
	require.NoError(t, err)
	assert.Equal(t, petri.ID(1), tr.ID())
	assert.Equal(t, []int{0, 1, 0}, []int{outs[0].Tokens(), outs[1].Tokens(), outs[2].Tokens()})
	assert.Equal(t, []*petri.Transition{tr}, fired)
}

func TestTriggerRandomDeadlock(t *testing.T) {
	n := petri.New(petri.WithName("stuck"))
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	connect(t, n, petri.InputArrow, p, tr)

	_, err := n.TriggerRandom()
	require.Error(t, err)
	assert.True(t, errors.Is(err, petri.ErrDeadlock))
	assert.Contains(t, err.Error(), "stuck")
	assert.True(t, n.Deadlock())
	assert.Equal(t, 0, p.Tokens())
}

func TestDeadlockFollowsDeletion(t *testing.T) {
	n := petri.New()
	tr := addTransition(t, n)
	changes := 0
	n.DeadlockChanged.Subscribe(func() { changes++ })

	tr.Delete()
	assert.True(t, n.Deadlock())
	tr.Restore()
	assert.False(t, n.Deadlock())
	assert.Equal(t, 2, changes)
}

func TestDeadlockIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := petri.New(petri.WithLogger(zap.New(core)), petri.WithName("logged"))
	require.Equal(t, 1, logs.FilterMessage("net deadlocked").Len())

	addTransition(t, n)
	entries := logs.FilterMessage("net live").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "logged", entries[0].ContextMap()["net"])
}

func TestSetInitialMarking(t *testing.T) {
	n := petri.New()
	p1 := addPlace(t, n, 5)
	tr := addTransition(t, n)
	p2 := addPlace(t, n, 5)
	p3 := addPlace(t, n, 0)
	connect(t, n, petri.InputArrow, p1, tr)
	connect(t, n, petri.OutputArrow, p2, tr)

	n.SetInitialMarking()
	assert.Equal(t, map[petri.ID]int{
		p1.ID(): 1,
		p2.ID(): 0,
		p3.ID(): 1,
	}, n.Marking())
}

func TestNetChangedAggregates(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	changed := 0
	n.Changed.Subscribe(func() { changed++ })
	p.Give()
	assert.Equal(t, 1, changed)
	p.Move(10, 10)
	assert.Equal(t, 2, changed)
}

func ExampleNet_TriggerRandom() {
	n := petri.New(petri.WithChooser(pick(0)))
	coin := petri.NewPlace(0, 0)
	coin.SetLabel("coin")
	coin.SetTokens(2)
	cookie := petri.NewPlace(100, 0)
	cookie.SetLabel("cookie")
	buy := petri.NewTransition(50, 0)
	buy.SetLabel("buy")
	_, _ = n.AddPlace(coin)
	_, _ = n.AddPlace(cookie)
	_, _ = n.AddTransition(buy)
	_, _ = n.Connect(petri.InputArrow, coin, buy)
	_, _ = n.Connect(petri.OutputArrow, cookie, buy)

	for {
		t, err := n.TriggerRandom()
		if err != nil {
			fmt.Println(errors.Is(err, petri.ErrDeadlock))
			break
		}
		fmt.Println(t, coin.Tokens(), cookie.Tokens())
	}
	// Output:
	// buy 1 1
	// buy 0 2
	// true
}

func TestArrowRestoreAfterReplacement(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 1)
	tr := addTransition(t, n)
	old := connect(t, n, petri.InputArrow, p, tr)
	old.Delete()
	replacement := connect(t, n, petri.InputArrow, p, tr)

	assert.ErrorIs(t, n.RestoreArrow(old), petri.ErrDuplicateArrow)
	old.Restore()
	assert.Equal(t, petri.Removed, old.State(), "the pair is already joined")
	assert.Equal(t, petri.RegisteredInput, replacement.State())
	assert.Equal(t, []*petri.Place{p}, tr.Inputs())

	require.NoError(t, n.Trigger(tr))
	assert.Equal(t, 0, p.Tokens())

	doc := n.Save()
	assert.Len(t, doc.Inputs, 1)
	require.NoError(t, petri.New().Load(doc))
}

func TestArrowRestoreAfterEndpointDeleted(t *testing.T) {
	n := petri.New()
	p := addPlace(t, n, 0)
	tr := addTransition(t, n)
	a := connect(t, n, petri.InputArrow, p, tr)

	p.Delete()
	require.Equal(t, petri.Removed, a.State())
	assert.ErrorIs(t, n.RestoreArrow(a), petri.ErrInactive)
	a.Restore()
	assert.Equal(t, petri.Removed, a.State())
	assert.Empty(t, tr.Inputs())
	assert.True(t, tr.Enabled())

	p.Restore()
	require.NoError(t, n.RestoreArrow(a))
	assert.Equal(t, petri.RegisteredInput, a.State())
	assert.False(t, tr.Enabled())
}

func TestRestoreArrowForeign(t *testing.T) {
	n := petri.New()
	other := petri.New()
	a := connect(t, other, petri.OutputArrow, addPlace(t, other, 0), addTransition(t, other))
	assert.ErrorIs(t, n.RestoreArrow(a), petri.ErrForeignNode)
}
