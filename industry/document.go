package industry

import (
	"fmt"

	petri "github.com/jt05610/petri-industry"
)

type EnterpriseDocument struct {
	petri.NodeDocument `yaml:",inline"`
	Net                *petri.NetDocument `json:"net" yaml:"net"`
}

type MessageDocument struct {
	ID                 petri.ID `json:"id" yaml:"id"`
	InputEnterpriseID  petri.ID `json:"inputEnterpriseId" yaml:"inputEnterpriseId"`
	InputTransitionID  petri.ID `json:"inputTransitionId" yaml:"inputTransitionId"`
	OutputEnterpriseID petri.ID `json:"outputEnterpriseId" yaml:"outputEnterpriseId"`
	OutputTransitionID petri.ID `json:"outputTransitionId" yaml:"outputTransitionId"`
}

// Document is the persisted form of a whole industry: the top level net plus
// the enterprises and the messages between them.
type Document struct {
	petri.NetDocument `yaml:",inline"`
	Enterprises       []EnterpriseDocument `json:"enterprises" yaml:"enterprises"`
	Messages          []MessageDocument    `json:"messages" yaml:"messages"`
}

func NewDocument() *Document {
	return &Document{
		NetDocument: *petri.NewNetDocument(),
		Enterprises: make([]EnterpriseDocument, 0),
		Messages:    make([]MessageDocument, 0),
	}
}

// Save returns the active part of the industry.
func (i *Industry) Save() *Document {
	doc := NewDocument()
	doc.NetDocument = *i.Net.Save()
	for _, e := range i.Enterprises.All() {
		doc.Enterprises = append(doc.Enterprises, e.Document())
	}
	for _, m := range i.Messages.All() {
		doc.Messages = append(doc.Messages, m.Document())
	}
	return doc
}

// Load rebuilds doc inside i, which should be freshly created: the top level
// net first, then every enterprise with its net, then the messages. The first
// failure aborts the load.
func (i *Industry) Load(doc *Document) error {
	if err := i.Net.Load(&doc.NetDocument); err != nil {
		return fmt.Errorf("industry net: %w", err)
	}
	for _, info := range doc.Enterprises {
		e := NewEnterprise(info.X, info.Y, i.netOptions(info.Label)...)
		e.ReadDocument(info.NodeDocument)
		if info.Net != nil {
			if err := e.Net().Load(info.Net); err != nil {
				return fmt.Errorf("enterprise %d: %w", info.ID, err)
			}
		}
		if err := i.Enterprises.AddWithID(e, info.ID); err != nil {
			return fmt.Errorf("enterprise %d: %w", info.ID, err)
		}
	}
	for _, info := range doc.Messages {
		input, err := i.endpoint(info.InputEnterpriseID, info.InputTransitionID)
		if err != nil {
			return fmt.Errorf("message %d: input: %w", info.ID, err)
		}
		output, err := i.endpoint(info.OutputEnterpriseID, info.OutputTransitionID)
		if err != nil {
			return fmt.Errorf("message %d: output: %w", info.ID, err)
		}
		if _, err := i.connect(input, output, info.ID); err != nil {
			return fmt.Errorf("message %d: %w", info.ID, err)
		}
	}
	return nil
}

func (i *Industry) endpoint(enterprise, transition petri.ID) (Endpoint, error) {
	e, err := i.Enterprises.Get(enterprise)
	if err != nil {
		return Endpoint{}, fmt.Errorf("enterprise: %w", err)
	}
	t, err := e.Net().Transitions.Get(transition)
	if err != nil {
		return Endpoint{}, fmt.Errorf("transition: %w", err)
	}
	return Endpoint{Enterprise: e, Transition: t}, nil
}
