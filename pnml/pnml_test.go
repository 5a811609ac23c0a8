package pnml_test

import (
	"bytes"
	"strings"
	"testing"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/fixtures"
	"github.com/jt05610/petri-industry/pnml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeNumbering(t *testing.T) {
	doc := pnml.Encode(fixtures.Chain(2), "")
	assert.Equal(t, "0", doc.Net.ID)
	assert.Equal(t, pnml.CoreModel, doc.Net.Type)
	assert.Equal(t, "1", doc.Net.Page.ID)

	require.Len(t, doc.Net.Page.Places, 2)
	assert.Equal(t, "2", doc.Net.Page.Places[0].ID)
	assert.Equal(t, "2", doc.Net.Page.Places[0].InitialMarking.Text)
	assert.Nil(t, doc.Net.Page.Places[1].InitialMarking)

	require.Len(t, doc.Net.Page.Transitions, 1)
	assert.Equal(t, "4", doc.Net.Page.Transitions[0].ID)
	assert.Equal(t, []pnml.Arc{
		{ID: "5", Source: "2", Target: "4"},
		{ID: "6", Source: "4", Target: "3"},
	}, doc.Net.Page.Arcs)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pnml.Write(&buf, fixtures.Chain(1), "plant"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<net id="plant" type="`+pnml.CoreModel+`">`)
	assert.Contains(t, out, `<arc id="5" source="2" target="4"></arc>`)
	assert.Contains(t, out, "<text>in</text>")
}

func TestReadWrite(t *testing.T) {
	var buf bytes.Buffer
	src := fixtures.Mutex()
	require.NoError(t, pnml.Write(&buf, src, ""))

	n, err := pnml.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Places.Len(), n.Places.Len())
	assert.Equal(t, src.Transitions.Len(), n.Transitions.Len())
	assert.Equal(t, src.Inputs.Len(), n.Inputs.Len())
	assert.Equal(t, src.Outputs.Len(), n.Outputs.Len())
	assert.Equal(t, src.Marking(), n.Marking())
	for i, p := range n.Places.All() {
		assert.Equal(t, src.Places.All()[i].Label(), p.Label())
	}
}

func TestReadUnknownNode(t *testing.T) {
	src := `<pnml><net id="0" type="x"><page id="1">
	<place id="2"/>
	<arc id="3" source="2" target="9"/>
</page></net></pnml>`
	_, err := pnml.Read(strings.NewReader(src), petri.WithName("broken"))
	assert.ErrorIs(t, err, pnml.ErrUnknownNode)
}
