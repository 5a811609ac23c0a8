package petri

// Merge registers every active element of other in n. Elements keep the ids
// they already have, so it only works for nets with disjoint ids. Two nets
// built independently both number from 0 and fail with ErrDuplicateID.
func (n *Net) Merge(other *Net) error {
	if err := n.Places.Merge(other.Places); err != nil {
		return err
	}
	if err := n.Transitions.Merge(other.Transitions); err != nil {
		return err
	}
	if err := n.Inputs.Merge(other.Inputs); err != nil {
		return err
	}
	return n.Outputs.Merge(other.Outputs)
}

// Save returns the persisted form of the active part of the net. Arrows
// whose endpoints are deleted are left out.
func (n *Net) Save() *NetDocument {
	doc := NewNetDocument()
	for _, p := range n.Places.All() {
		doc.Places = append(doc.Places, p.Document())
	}
	for _, t := range n.Transitions.All() {
		doc.Transitions = append(doc.Transitions, t.Document())
	}
	for _, a := range n.Inputs.All() {
		if a.place.Active() && a.transition.Active() {
			doc.Inputs = append(doc.Inputs, a.Document())
		}
	}
	for _, a := range n.Outputs.All() {
		if a.place.Active() && a.transition.Active() {
			doc.Outputs = append(doc.Outputs, a.Document())
		}
	}
	return doc
}
