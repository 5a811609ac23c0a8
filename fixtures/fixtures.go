package fixtures

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/industry"
	"github.com/jt05610/petri-industry/petrifile"
)

// Fixed is a petri.Chooser that always picks the same index, wrapped into
// range.
type Fixed int

func (f Fixed) Intn(n int) int { return int(f) % n }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Chain returns in -> move -> out with tokens in the first place.
func Chain(tokens int) *petri.Net {
	n := petri.New(petri.WithName("chain"), petri.WithChooser(Fixed(0)))
	in := petri.NewPlace(0, 0)
	in.SetLabel("in")
	in.SetTokens(tokens)
	out := petri.NewPlace(200, 0)
	out.SetLabel("out")
	move := petri.NewTransition(100, 0)
	move.SetLabel("move")
	must(n.AddPlace(in))
	must(n.AddPlace(out))
	must(n.AddTransition(move))
	must(n.Connect(petri.InputArrow, in, move))
	must(n.Connect(petri.OutputArrow, out, move))
	return n
}

// Mutex returns the classic two-process mutual exclusion net: each process
// cycles idle -> enter -> critical -> leave -> idle and entering takes the
// shared lock token.
func Mutex() *petri.Net {
	n := petri.New(petri.WithName("mutex"), petri.WithChooser(Fixed(0)))
	lock := petri.NewPlace(100, 100)
	lock.SetLabel("lock")
	lock.SetTokens(1)
	must(n.AddPlace(lock))
	for i, name := range []string{"a", "b"} {
		x := float64(i) * 200
		idle := petri.NewPlace(x, 0)
		idle.SetLabel(name + ".idle")
		idle.SetTokens(1)
		critical := petri.NewPlace(x, 200)
		critical.SetLabel(name + ".critical")
		enter := petri.NewTransition(x-50, 100)
		enter.SetLabel(name + ".enter")
		leave := petri.NewTransition(x+50, 100)
		leave.SetLabel(name + ".leave")
		must(n.AddPlace(idle))
		must(n.AddPlace(critical))
		must(n.AddTransition(enter))
		must(n.AddTransition(leave))
		must(n.Connect(petri.InputArrow, idle, enter))
		must(n.Connect(petri.InputArrow, lock, enter))
		must(n.Connect(petri.OutputArrow, critical, enter))
		must(n.Connect(petri.InputArrow, critical, leave))
		must(n.Connect(petri.OutputArrow, idle, leave))
		must(n.Connect(petri.OutputArrow, lock, leave))
	}
	return n
}

// SupplyChain returns an industry where a factory ships crates to a shop:
// factory stock -> ship ==crate==> receive -> shop shelf.
func SupplyChain() *industry.Industry {
	ind := industry.New(industry.WithChooser(Fixed(0)))
	factory := must(ind.NewEnterprise(0, 0))
	factory.SetLabel("Factory")
	shop := must(ind.NewEnterprise(300, 0))
	shop.SetLabel("Shop")

	stock := petri.NewPlace(0, 0)
	stock.SetLabel("stock")
	stock.SetTokens(3)
	ship := petri.NewTransition(100, 0)
	ship.SetLabel("ship")
	ship.SetType(petri.OutputPort)
	ship.SetMessageType("crate")
	must(factory.Net().AddPlace(stock))
	must(factory.Net().AddTransition(ship))
	must(factory.Net().Connect(petri.InputArrow, stock, ship))

	receive := petri.NewTransition(0, 0)
	receive.SetLabel("receive")
	receive.SetType(petri.InputPort)
	receive.SetMessageType("crate")
	shelf := petri.NewPlace(100, 0)
	shelf.SetLabel("shelf")
	must(shop.Net().AddTransition(receive))
	must(shop.Net().AddPlace(shelf))
	must(shop.Net().Connect(petri.OutputArrow, shelf, receive))

	must(ind.Connect(
		industry.Endpoint{Enterprise: shop, Transition: receive},
		industry.Endpoint{Enterprise: factory, Transition: ship},
	))
	return ind
}

type ServiceTestCase struct {
	Name  string
	Srv   petrifile.Service
	Input *industry.Industry
}

// RunServiceTest writes the input through the service, reads it back and
// checks that the industry rebuilt from it saves to the same document.
func RunServiceTest(t *testing.T, tc *ServiceTestCase) {
	var buf bytes.Buffer
	expect := tc.Input.Save()
	t.Run(tc.Name+".Save", func(t *testing.T) {
		if err := tc.Srv.Save(context.Background(), &buf, expect); err != nil {
			t.Fatalf("Save test failed: %v", err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Save test failed: nothing written")
		}
	})
	var actual *industry.Document
	t.Run(tc.Name+".Load", func(t *testing.T) {
		var err error
		actual, err = tc.Srv.Load(context.Background(), bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("Load test failed: %v", err)
		}
		if !reflect.DeepEqual(expect, actual) {
			t.Fatalf("Load test failed: expected %+v, got %+v", expect, actual)
		}
	})
	t.Run(tc.Name+".Rebuild", func(t *testing.T) {
		if actual == nil {
			t.Skip("nothing loaded")
		}
		ind := industry.New()
		if err := ind.Load(actual); err != nil {
			t.Fatalf("Rebuild test failed: %v", err)
		}
		if !reflect.DeepEqual(expect, ind.Save()) {
			t.Fatalf("Rebuild test failed: saved document differs")
		}
		if ind.Messages.Len() != tc.Input.Messages.Len() {
			t.Fatalf("Rebuild message test failed: expected %d, got %d", tc.Input.Messages.Len(), ind.Messages.Len())
		}
	})
	t.Run(tc.Name+".Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := tc.Srv.Save(ctx, &bytes.Buffer{}, expect); err == nil {
			t.Fatalf("Cancelled test failed: expected an error")
		}
	})
}
