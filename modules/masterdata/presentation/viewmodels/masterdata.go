package viewmodels

type RTOListItem struct {
	ID            string `json:"id"`
	RTOCode       string `json:"rto_code"`
	City          string `json:"city"`
	State         string `json:"state"`
	SearchString  string `json:"search_string"`
	DisplayString string `json:"display_string"`
}

type MMVListItem struct {
	EnsureditID      string `json:"ensuredit_id"`
	ProductID        int    `json:"product_id"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Variant          string `json:"variant"`
	FuelType         string `json:"fuel_type"`
	CC               int    `json:"cc"`
	BodyType         string `json:"body_type"`
	SeatingCapacity  int    `json:"seating_capacity"`
	CarryingCapacity int    `json:"carrying_capacity"`
}

type PincodeListItem struct {
	Pincode  string `json:"pincode"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// InsurerItem describes one supported insurer for a given master type.
type InsurerItem struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Scalar bool   `json:"scalar"`
}

type FieldSpecItem struct {
	Group string `json:"group,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label"`
}
