// Package graphviz draws nets and industries with Graphviz.
package graphviz

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/industry"
)

type Writer struct {
	*Config
	g       *cgraph.Graph
	mapping map[petri.Element]*cgraph.Node
}

func (w *Writer) writePlace(g *cgraph.Graph, prefix string, p *petri.Place) error {
	node, err := g.CreateNode(fmt.Sprintf("%sp%d", prefix, p.ID()))
	if err != nil {
		return err
	}
	node.SetShape(cgraph.CircleShape)
	node.SetLabel(fmt.Sprintf("%s: %d", p, p.Tokens()))
	node.SetFontName(string(w.Font))
	w.mapping[p] = node
	return nil
}

func (w *Writer) writeTransition(g *cgraph.Graph, prefix string, t *petri.Transition) error {
	node, err := g.CreateNode(fmt.Sprintf("%st%d", prefix, t.ID()))
	if err != nil {
		return err
	}
	w.mapping[t] = node
	node.SetShape(cgraph.BoxShape)
	node.SetLabel(t.String())
	node.SetFontName(string(w.Font))
	if t.Enabled() {
		node.SetStyle(cgraph.BoldNodeStyle)
	}
	if t.Type() != petri.Internal {
		node.SetPeripheries(2)
		node.SetXLabel(fmt.Sprintf("%s %s", t.Type(), t.MessageType()))
	}
	return nil
}

func (w *Writer) writeArrow(prefix string, a *petri.Arrow) error {
	p := w.mapping[a.Place()]
	t := w.mapping[a.Transition()]
	if p == nil || t == nil {
		return nil
	}
	src, dst := p, t
	if a.Type() == petri.OutputArrow {
		src, dst = t, p
	}
	_, err := w.g.CreateEdge(fmt.Sprintf("%s%s%d", prefix, a.Type(), a.ID()), src, dst)
	return err
}

func (w *Writer) writeNet(g *cgraph.Graph, prefix string, n *petri.Net) error {
	for _, p := range n.Places.All() {
		if err := w.writePlace(g, prefix, p); err != nil {
			return err
		}
	}
	for _, t := range n.Transitions.All() {
		if err := w.writeTransition(g, prefix, t); err != nil {
			return err
		}
	}
	for _, a := range n.Inputs.All() {
		if err := w.writeArrow(prefix, a); err != nil {
			return err
		}
	}
	for _, a := range n.Outputs.All() {
		if err := w.writeArrow(prefix, a); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) render(out io.Writer, draw func() error) error {
	graph := graphviz.New()
	defer func() {
		_ = graph.Close()
	}()
	g, err := graph.Graph()
	if err != nil {
		return err
	}
	defer func() {
		_ = g.Close()
	}()
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	w.g = g
	w.mapping = make(map[petri.Element]*cgraph.Node)
	if err := draw(); err != nil {
		return err
	}
	return graph.Render(w.g, w.Format, out)
}

// Flush renders the active part of n.
func (w *Writer) Flush(out io.Writer, n *petri.Net) error {
	return w.render(out, func() error {
		return w.writeNet(w.g, "", n)
	})
}

// FlushIndustry renders the top level net, one cluster per enterprise and a
// dashed edge per message.
func (w *Writer) FlushIndustry(out io.Writer, ind *industry.Industry) error {
	return w.render(out, func() error {
		if err := w.writeNet(w.g, "", ind.Net); err != nil {
			return err
		}
		for _, e := range ind.Enterprises.All() {
			sub := w.g.SubGraph(fmt.Sprintf("cluster_e%d", e.ID()), 1)
			sub.SetLabel(e.String())
			if err := w.writeNet(sub, fmt.Sprintf("e%d_", e.ID()), e.Net()); err != nil {
				return err
			}
		}
		for _, m := range ind.Messages.All() {
			src := w.mapping[m.Output().Transition]
			dst := w.mapping[m.Input().Transition]
			if src == nil || dst == nil {
				continue
			}
			edge, err := w.g.CreateEdge(fmt.Sprintf("m%d", m.ID()), src, dst)
			if err != nil {
				return err
			}
			edge.SetStyle(cgraph.DashedEdgeStyle)
			edge.SetLabel(m.MessageType())
		}
		return nil
	})
}

type Font string

func (f Font) Or(other Font) Font {
	return f + "," + other
}

const (
	Helvetica  Font = "Helvetica"
	Arial      Font = "Arial"
	Roboto     Font = "Roboto"
	Montserrat Font = "Montserrat"
	SansSerif  Font = "sans-serif"
	Serif      Font = "Serif"
	Times      Font = "Times"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

type Config struct {
	Font
	RankDir
	// Format defaults to graphviz.XDOT.
	Format graphviz.Format
}

func New(config *Config) *Writer {
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.RankDir == "" {
		config.RankDir = LeftToRight
	}
	if config.Format == "" {
		config.Format = graphviz.XDOT
	}
	return &Writer{
		Config: config,
	}
}
