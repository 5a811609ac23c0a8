package petri

import "github.com/jt05610/petri-industry/signal"

// Place holds an integer number of tokens. The count is not clamped: Take on
// an empty place goes negative, and keeping that from happening is up to the
// caller (Transition.Trigger only takes from places it found non-empty).
type Place struct {
	Node
	TokensChanged signal.Notifier

	tokens signal.Field[int]
}

func NewPlace(x, y float64) *Place {
	p := &Place{}
	p.Init(x, y)
	p.tokens = signal.NewField(&p.TokensChanged, 0)
	p.TokensChanged.Relay(&p.Changed)
	return p
}

func (p *Place) Kind() NodeKind { return PlaceNode }

func (p *Place) String() string { return p.name("p") }

func (p *Place) Tokens() int { return p.tokens.Get() }

func (p *Place) SetTokens(n int) { p.tokens.Set(n) }

func (p *Place) Give() { p.tokens.Set(p.tokens.Get() + 1) }

func (p *Place) Take() { p.tokens.Set(p.tokens.Get() - 1) }

func (p *Place) Document() PlaceDocument {
	return PlaceDocument{
		NodeDocument: p.NodeDocument(),
		Tokens:       p.Tokens(),
	}
}

func (p *Place) ReadDocument(d PlaceDocument) {
	p.Node.ReadDocument(d.NodeDocument)
	p.SetTokens(d.Tokens)
}
