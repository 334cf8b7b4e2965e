package id

import (
	"encoding/json"

	"github.com/sunholo/lambdalift/internal/types"
)

// idJSON is Id's wire form.
type idJSON struct {
	Name        Name              `json:"name"`
	Type        json.RawMessage   `json:"type"`
	Constraints []json.RawMessage `json:"constraints,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (i Id) MarshalJSON() ([]byte, error) {
	typ, err := types.MarshalType(i.Typ)
	if err != nil {
		return nil, err
	}
	j := idJSON{Name: i.Name, Type: typ}
	if len(i.Constraints) > 0 {
		j.Constraints = make([]json.RawMessage, len(i.Constraints))
		for idx, c := range i.Constraints {
			raw, err := types.MarshalConstraints([]types.Constraint{c})
			if err != nil {
				return nil, err
			}
			var single []json.RawMessage
			if err := json.Unmarshal(raw, &single); err != nil {
				return nil, err
			}
			j.Constraints[idx] = single[0]
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Id) UnmarshalJSON(data []byte) error {
	var j idJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	typ, err := types.UnmarshalType(j.Type)
	if err != nil {
		return err
	}
	constraints := make([]types.Constraint, len(j.Constraints))
	for idx, raw := range j.Constraints {
		combined, err := json.Marshal([]json.RawMessage{raw})
		if err != nil {
			return err
		}
		cs, err := types.UnmarshalConstraints(combined)
		if err != nil {
			return err
		}
		constraints[idx] = cs[0]
	}
	*i = Id{Name: j.Name, Typ: typ, Constraints: constraints}
	return nil
}
