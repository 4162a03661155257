package mappers

import (
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/viewmodels"
)

func RTOToListItem(r rto.RTO) *viewmodels.RTOListItem {
	return &viewmodels.RTOListItem{
		ID:            r.ID(),
		RTOCode:       r.RTOCode(),
		City:          r.City(),
		State:         r.State(),
		SearchString:  r.SearchString(),
		DisplayString: r.DisplayString(),
	}
}

func MMVToListItem(m mmv.MMV) *viewmodels.MMVListItem {
	return &viewmodels.MMVListItem{
		EnsureditID:      string(m.Code()),
		ProductID:        m.ProductID(),
		Make:             m.Make(),
		Model:            m.Model(),
		Variant:          m.Variant(),
		FuelType:         m.FuelType(),
		CC:               m.CC(),
		BodyType:         m.BodyType(),
		SeatingCapacity:  m.SeatingCapacity(),
		CarryingCapacity: m.CarryingCapacity(),
	}
}

func PincodeToListItem(p pincode.Pincode) *viewmodels.PincodeListItem {
	return &viewmodels.PincodeListItem{
		Pincode:  p.Code(),
		District: p.District(),
		City:     p.City(),
		State:    p.State(),
	}
}
