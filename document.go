package petri

// NodeDocument is the persisted form shared by places, transitions and
// enterprises.
type NodeDocument struct {
	ID            ID      `json:"id" yaml:"id"`
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	Label         string  `json:"label" yaml:"label"`
	LabelAngle    float64 `json:"labelAngle" yaml:"labelAngle"`
	LabelDistance float64 `json:"labelDistance" yaml:"labelDistance"`
}

type PlaceDocument struct {
	NodeDocument `yaml:",inline"`
	Tokens       int `json:"tokens" yaml:"tokens"`
}

type TransitionDocument struct {
	NodeDocument  `yaml:",inline"`
	Type          TransitionType `json:"type" yaml:"type"`
	MessageType   string         `json:"messageType" yaml:"messageType"`
	ArrowAngle    float64        `json:"arrowAngle" yaml:"arrowAngle"`
	IndustryAngle float64        `json:"industryAngle" yaml:"industryAngle"`
}

type ArrowDocument struct {
	ID         ID `json:"id" yaml:"id"`
	Place      ID `json:"place" yaml:"place"`
	Transition ID `json:"transition" yaml:"transition"`
}

// NetDocument is the persisted form of a Net.
type NetDocument struct {
	Places      []PlaceDocument      `json:"places" yaml:"places"`
	Transitions []TransitionDocument `json:"transitions" yaml:"transitions"`
	Inputs      []ArrowDocument      `json:"inputs" yaml:"inputs"`
	Outputs     []ArrowDocument      `json:"outputs" yaml:"outputs"`
}

func NewNetDocument() *NetDocument {
	return &NetDocument{
		Places:      make([]PlaceDocument, 0),
		Transitions: make([]TransitionDocument, 0),
		Inputs:      make([]ArrowDocument, 0),
		Outputs:     make([]ArrowDocument, 0),
	}
}
