package industry

import (
	"fmt"

	petri "github.com/jt05610/petri-industry"
)

// Names is the roster new enterprises draw their default label from.
var Names = []string{
	"Petrochem",
	"SovOil",
	"Militech",
	"Arasaka",
	"Biotechnica",
	"Orbital Air",
	"TK Heavy",
	"YoYoDyne Systems",
	"ECorp",
	"Seburo",
	"Genesis Andross",
	"Kuromatsu Electrics",
	"Rossini Air Line",
	"Kenbishi Heavy Industries",
	"Toyoda Chemicals",
	"Armali Council",
	"Blackstone Enterprises",
	"Chronoarcheology Ltd.",
	"Cyberdyne systems",
	"Darkside Services",
	"Empathix",
	"Gaia, Inc,",
	"Soylent Corporation",
	"Multi-National United",
	"Meditech Corp",
}

func RandomName(c petri.Chooser) string {
	return Names[c.Intn(len(Names))]
}

// Enterprise is a node of the industry that owns a private Petri net. Its
// Changed notifier also reports every change inside that net.
type Enterprise struct {
	petri.Node

	net *petri.Net
}

func NewEnterprise(x, y float64, opts ...petri.Option) *Enterprise {
	e := &Enterprise{}
	e.Init(x, y)
	e.net = petri.New(opts...)
	e.net.Changed.Relay(&e.Changed)
	return e
}

func (e *Enterprise) Net() *petri.Net { return e.net }

func (e *Enterprise) String() string {
	if l := e.Label(); l != "" {
		return l
	}
	if !e.HasID() {
		return "e?"
	}
	return fmt.Sprintf("e%d", e.ID())
}

// Ports returns the active transitions of the enterprise net that can take
// part in a message.
func (e *Enterprise) Ports() []*petri.Transition {
	ret := make([]*petri.Transition, 0)
	for _, t := range e.net.Transitions.All() {
		if t.Type() != petri.Internal {
			ret = append(ret, t)
		}
	}
	return ret
}

func (e *Enterprise) Document() EnterpriseDocument {
	return EnterpriseDocument{
		NodeDocument: e.NodeDocument(),
		Net:          e.net.Save(),
	}
}
