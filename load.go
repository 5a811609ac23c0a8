package petri

import "fmt"

// Load rebuilds the elements described by doc inside n, keeping their ids.
// Places and transitions are registered before any arrow is resolved. The
// first failure aborts the load and leaves n partially filled; load into a
// fresh Net and drop it on error.
func (n *Net) Load(doc *NetDocument) error {
	for _, info := range doc.Places {
		p := NewPlace(info.X, info.Y)
		p.ReadDocument(info)
		if err := n.Places.AddWithID(p, info.ID); err != nil {
			return fmt.Errorf("place %d: %w", info.ID, err)
		}
	}
	for _, info := range doc.Transitions {
		if !info.Type.Valid() {
			return fmt.Errorf("transition %d: %w: %d", info.ID, ErrInvalidType, int(info.Type))
		}
		t := NewTransition(info.X, info.Y)
		t.ReadDocument(info)
		if err := n.Transitions.AddWithID(t, info.ID); err != nil {
			return fmt.Errorf("transition %d: %w", info.ID, err)
		}
	}
	if err := n.loadArrows(InputArrow, doc.Inputs); err != nil {
		return err
	}
	return n.loadArrows(OutputArrow, doc.Outputs)
}

func (n *Net) loadArrows(typ ArrowType, infos []ArrowDocument) error {
	for _, info := range infos {
		p, err := n.Places.Get(info.Place)
		if err != nil {
			return fmt.Errorf("%s arrow %d: place: %w", typ, info.ID, err)
		}
		t, err := n.Transitions.Get(info.Transition)
		if err != nil {
			return fmt.Errorf("%s arrow %d: transition: %w", typ, info.ID, err)
		}
		if _, err := n.connect(typ, p, t, info.ID); err != nil {
			return fmt.Errorf("%s arrow %d: %w", typ, info.ID, err)
		}
	}
	return nil
}
