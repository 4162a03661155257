package pincode

import (
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

// Pincode is one postal code record, keyed by the 6-digit code itself.
type Pincode struct {
	pincode  string
	district string
	city     string
	state    string
	mappings map[string]mapping.Value
}

func New(code, district, city, state string) Pincode {
	return Pincode{
		pincode:  strings.TrimSpace(code),
		district: strings.TrimSpace(district),
		city:     strings.TrimSpace(city),
		state:    strings.TrimSpace(state),
	}
}

func Hydrate(code, district, city, state string, mappings map[string]mapping.Value) Pincode {
	return Pincode{
		pincode:  code,
		district: district,
		city:     city,
		state:    state,
		mappings: mappings,
	}
}

func (p Pincode) Code() string     { return p.pincode }
func (p Pincode) District() string { return p.district }
func (p Pincode) City() string     { return p.city }
func (p Pincode) State() string    { return p.state }
func (p Pincode) IsZero() bool     { return p.pincode == "" }

func (p Pincode) Mapping(ins insurer.Insurer) mapping.Value {
	if v, ok := p.mappings[ins.Column()]; ok && !v.Empty() {
		return v
	}
	if legacy := ins.LegacyColumn(); legacy != "" {
		if v, ok := p.mappings[legacy]; ok {
			return v
		}
	}
	return p.mappings[ins.Column()]
}

func (p Pincode) Mappings() map[string]mapping.Value {
	out := make(map[string]mapping.Value, len(p.mappings))
	for k, v := range p.mappings {
		out[k] = v
	}
	return out
}
