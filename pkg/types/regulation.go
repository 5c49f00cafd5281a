package types

import "encoding/json"

// Values of the regulation applied where nothing else is in force.
const (
	DefaultPriority = 100
	DefaultActivity = "parking"
)

// Rule is the CurbLR rule of a regulation. Only the activity is interpreted.
type Rule struct {
	Activity string `json:"activity"`
}

// Regulation is one time-scoped rule on a feature. Lower Priority values take
// precedence over higher ones.
type Regulation struct {
	Priority  int        `json:"priority"`
	Rule      Rule       `json:"rule"`
	TimeSpans []TimeSpan `json:"timeSpans,omitempty"`

	// raw is the decoded source document, written back verbatim so that
	// fields such as userClasses or payment survive filtering.
	raw json.RawMessage
}

// DefaultRegulation returns the ordinary-parking regulation used when no
// regulation on a feature is active.
func DefaultRegulation() Regulation {
	return Regulation{Priority: DefaultPriority, Rule: Rule{Activity: DefaultActivity}}
}

// IsDefault reports whether r is the fallback regulation produced by
// DefaultRegulation.
func (r Regulation) IsDefault() bool {
	return r.raw == nil && r.Priority == DefaultPriority && r.Rule.Activity == DefaultActivity && len(r.TimeSpans) == 0
}

type regulationAlias Regulation

// UnmarshalJSON decodes a regulation and keeps its source encoding.
func (r *Regulation) UnmarshalJSON(data []byte) error {
	var a regulationAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Regulation(a)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the source encoding when the regulation was decoded,
// and the typed fields otherwise.
func (r Regulation) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return json.Marshal(regulationAlias(r))
}
