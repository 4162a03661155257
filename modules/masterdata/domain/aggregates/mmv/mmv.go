package mmv

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

// Product lines sharing the mmv_master table. Product 1 codes start
// at make prefix 101, product 2 at 401.
const (
	ProductTwoWheeler  = 1
	ProductFourWheeler = 2
)

// MMV is one make/model/variant catalog row. The (productID, make,
// model, variant) quadruple is unique; the composite code is unique
// per table and stable once assigned.
type MMV struct {
	id               uuid.UUID
	productID        int
	make             string
	model            string
	variant          string
	fuelType         string
	cc               int
	bodyType         string
	seatingCapacity  int
	carryingCapacity int
	code             Code
	mappings         map[string]mapping.Value
}

func New(
	productID int,
	make, model, variant string,
	fuelType string,
	cc int,
	bodyType string,
	seatingCapacity, carryingCapacity int,
) MMV {
	return MMV{
		productID:        productID,
		make:             strings.TrimSpace(make),
		model:            strings.TrimSpace(model),
		variant:          strings.TrimSpace(variant),
		fuelType:         strings.TrimSpace(fuelType),
		cc:               cc,
		bodyType:         strings.TrimSpace(bodyType),
		seatingCapacity:  seatingCapacity,
		carryingCapacity: carryingCapacity,
	}
}

func Hydrate(
	id uuid.UUID,
	productID int,
	make, model, variant string,
	fuelType string,
	cc int,
	bodyType string,
	seatingCapacity, carryingCapacity int,
	code Code,
	mappings map[string]mapping.Value,
) MMV {
	return MMV{
		id:               id,
		productID:        productID,
		make:             make,
		model:            model,
		variant:          variant,
		fuelType:         fuelType,
		cc:               cc,
		bodyType:         bodyType,
		seatingCapacity:  seatingCapacity,
		carryingCapacity: carryingCapacity,
		code:             code,
		mappings:         mappings,
	}
}

func (m MMV) ID() uuid.UUID         { return m.id }
func (m MMV) ProductID() int        { return m.productID }
func (m MMV) Make() string          { return m.make }
func (m MMV) Model() string         { return m.model }
func (m MMV) Variant() string       { return m.variant }
func (m MMV) FuelType() string      { return m.fuelType }
func (m MMV) CC() int               { return m.cc }
func (m MMV) BodyType() string      { return m.bodyType }
func (m MMV) SeatingCapacity() int  { return m.seatingCapacity }
func (m MMV) CarryingCapacity() int { return m.carryingCapacity }
func (m MMV) Code() Code            { return m.code }
func (m MMV) IsZero() bool          { return m.id == uuid.Nil && m.code == "" }

// WithCode returns a copy carrying the allocated composite code.
func (m MMV) WithCode(code Code) MMV {
	m.code = code
	return m
}

func (m MMV) Mapping(ins insurer.Insurer) mapping.Value {
	if v, ok := m.mappings[ins.Column()]; ok && !v.Empty() {
		return v
	}
	if legacy := ins.LegacyColumn(); legacy != "" {
		if v, ok := m.mappings[legacy]; ok {
			return v
		}
	}
	return m.mappings[ins.Column()]
}

func (m MMV) Mappings() map[string]mapping.Value {
	out := make(map[string]mapping.Value, len(m.mappings))
	for k, v := range m.mappings {
		out[k] = v
	}
	return out
}
