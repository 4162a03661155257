package rto

import (
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

// RTO is one regional transport office record. The id is an
// integer-as-string business key allocated as max(existing)+1.
type RTO struct {
	id            string
	rtoCode       string
	city          string
	state         string
	searchString  string
	displayString string
	mappings      map[string]mapping.Value
}

func New(id, rtoCode, city, state, searchString, displayString string) RTO {
	return RTO{
		id:            strings.TrimSpace(id),
		rtoCode:       strings.TrimSpace(rtoCode),
		city:          strings.TrimSpace(city),
		state:         strings.TrimSpace(state),
		searchString:  strings.TrimSpace(searchString),
		displayString: strings.TrimSpace(displayString),
	}
}

func Hydrate(
	id, rtoCode, city, state, searchString, displayString string,
	mappings map[string]mapping.Value,
) RTO {
	return RTO{
		id:            id,
		rtoCode:       rtoCode,
		city:          city,
		state:         state,
		searchString:  searchString,
		displayString: displayString,
		mappings:      mappings,
	}
}

func (r RTO) ID() string            { return r.id }
func (r RTO) RTOCode() string       { return r.rtoCode }
func (r RTO) City() string          { return r.city }
func (r RTO) State() string         { return r.state }
func (r RTO) SearchString() string  { return r.searchString }
func (r RTO) DisplayString() string { return r.displayString }
func (r RTO) IsZero() bool          { return r.id == "" }

// Mapping returns the payload stored for an insurer, falling back to
// the insurer's legacy column when the primary one is empty.
func (r RTO) Mapping(ins insurer.Insurer) mapping.Value {
	if v, ok := r.mappings[ins.Column()]; ok && !v.Empty() {
		return v
	}
	if legacy := ins.LegacyColumn(); legacy != "" {
		if v, ok := r.mappings[legacy]; ok {
			return v
		}
	}
	return r.mappings[ins.Column()]
}

// Mappings returns all stored payloads keyed by column name.
func (r RTO) Mappings() map[string]mapping.Value {
	out := make(map[string]mapping.Value, len(r.mappings))
	for k, v := range r.mappings {
		out[k] = v
	}
	return out
}
