// Package pnml reads and writes nets in the PNML place/transition core
// model.
package pnml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	petri "github.com/jt05610/petri-industry"
)

const CoreModel = "http://www.pnml.org/version-2009/grammar/pnmlcoremodel"

var ErrUnknownNode = errors.New("arc references an unknown node")

type Document struct {
	XMLName xml.Name `xml:"pnml"`
	Net     Net      `xml:"net"`
}

type Net struct {
	ID   string `xml:"id,attr"`
	Type string `xml:"type,attr"`
	Page Page   `xml:"page"`
}

type Page struct {
	ID          string       `xml:"id,attr"`
	Places      []Place      `xml:"place"`
	Transitions []Transition `xml:"transition"`
	Arcs        []Arc        `xml:"arc"`
}

type Text struct {
	Text string `xml:"text"`
}

type Place struct {
	ID             string `xml:"id,attr"`
	Name           *Text  `xml:"name,omitempty"`
	InitialMarking *Text  `xml:"initialMarking,omitempty"`
}

type Transition struct {
	ID   string `xml:"id,attr"`
	Name *Text  `xml:"name,omitempty"`
}

type Arc struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// Encode numbers elements the way the page layout expects: the net is 0,
// the page 1, then places, transitions and arcs in turn. Arcs are listed per
// transition, inputs first.
func Encode(n *petri.Net, netID string) *Document {
	places := n.Places.All()
	transitions := n.Transitions.All()
	placeStart := 2
	transitionStart := placeStart + len(places)
	arcID := transitionStart + len(transitions)

	index := make(map[*petri.Place]string, len(places))
	page := Page{ID: "1"}
	for i, p := range places {
		id := strconv.Itoa(placeStart + i)
		index[p] = id
		el := Place{ID: id}
		if l := p.Label(); l != "" {
			el.Name = &Text{Text: l}
		}
		if tok := p.Tokens(); tok != 0 {
			el.InitialMarking = &Text{Text: strconv.Itoa(tok)}
		}
		page.Places = append(page.Places, el)
	}
	arc := func(src, dst string) {
		page.Arcs = append(page.Arcs, Arc{ID: strconv.Itoa(arcID), Source: src, Target: dst})
		arcID++
	}
	for i, t := range transitions {
		id := strconv.Itoa(transitionStart + i)
		el := Transition{ID: id}
		if l := t.Label(); l != "" {
			el.Name = &Text{Text: l}
		}
		page.Transitions = append(page.Transitions, el)
		for _, p := range t.Inputs() {
			if pid, ok := index[p]; ok {
				arc(pid, id)
			}
		}
		for _, p := range t.Outputs() {
			if pid, ok := index[p]; ok {
				arc(id, pid)
			}
		}
	}
	if netID == "" {
		netID = "0"
	}
	return &Document{Net: Net{ID: netID, Type: CoreModel, Page: page}}
}

func Write(w io.Writer, n *petri.Net, netID string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(Encode(n, netID)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Read builds a net from a PNML document. Names become labels and initial
// markings become token counts; graphics are ignored.
func Read(r io.Reader, opts ...petri.Option) (*petri.Net, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode pnml: %w", err)
	}
	n := petri.New(opts...)
	places := make(map[string]*petri.Place)
	transitions := make(map[string]*petri.Transition)
	for _, el := range doc.Net.Page.Places {
		p := petri.NewPlace(0, 0)
		if el.Name != nil {
			p.SetLabel(el.Name.Text)
		}
		if el.InitialMarking != nil {
			tok, err := strconv.Atoi(strings.TrimSpace(el.InitialMarking.Text))
			if err != nil {
				return nil, fmt.Errorf("place %s: marking: %w", el.ID, err)
			}
			p.SetTokens(tok)
		}
		if _, err := n.AddPlace(p); err != nil {
			return nil, err
		}
		places[el.ID] = p
	}
	for _, el := range doc.Net.Page.Transitions {
		t := petri.NewTransition(0, 0)
		if el.Name != nil {
			t.SetLabel(el.Name.Text)
		}
		if _, err := n.AddTransition(t); err != nil {
			return nil, err
		}
		transitions[el.ID] = t
	}
	for _, el := range doc.Net.Page.Arcs {
		var err error
		if p, ok := places[el.Source]; ok {
			t, ok := transitions[el.Target]
			if !ok {
				return nil, fmt.Errorf("%w: arc %s target %s", ErrUnknownNode, el.ID, el.Target)
			}
			_, err = n.Connect(petri.InputArrow, p, t)
		} else if t, ok := transitions[el.Source]; ok {
			p, ok := places[el.Target]
			if !ok {
				return nil, fmt.Errorf("%w: arc %s target %s", ErrUnknownNode, el.ID, el.Target)
			}
			_, err = n.Connect(petri.OutputArrow, p, t)
		} else {
			return nil, fmt.Errorf("%w: arc %s source %s", ErrUnknownNode, el.ID, el.Source)
		}
		if err != nil {
			return nil, fmt.Errorf("arc %s: %w", el.ID, err)
		}
	}
	return n, nil
}
