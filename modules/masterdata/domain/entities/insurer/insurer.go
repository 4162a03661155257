package insurer

import "strings"

// MasterKind identifies one of the three reference datasets.
type MasterKind string

const (
	KindRTO     MasterKind = "rto"
	KindMMV     MasterKind = "mmv"
	KindPincode MasterKind = "pincode"
)

func (k MasterKind) Valid() bool {
	switch k {
	case KindRTO, KindMMV, KindPincode:
		return true
	}
	return false
}

// Insurer is one downstream carrier the platform integrates with. The
// set is closed: mapping columns are resolved only through this
// registry, never from caller-supplied strings.
type Insurer struct {
	name   string
	column string
	// legacyColumn is an older column name still present in some
	// deployments; reads fall back to it when the primary column is
	// empty, writes always target the primary column.
	legacyColumn string
}

func (i Insurer) Name() string { return i.name }

// Column is the mapping column for this insurer. Safe to splice into
// SQL because every value originates from the registry below.
func (i Insurer) Column() string { return i.column }

func (i Insurer) LegacyColumn() string { return i.legacyColumn }

// UploadAliases are the payload-column header names accepted for this
// insurer in bulk CSV uploads, lower-cased.
func (i Insurer) UploadAliases() []string {
	aliases := []string{i.column}
	if i.legacyColumn != "" {
		aliases = append(aliases, i.legacyColumn)
	}
	return aliases
}

// Scalar reports whether this insurer stores a bare code rather than a
// JSON object for the given master kind and product. Scalar payloads
// skip JSON validation on save.
func (i Insurer) Scalar(kind MasterKind, productID int) bool {
	if kind != KindMMV {
		return false
	}
	switch i.name {
	case "digit", "royalSundaram":
		return true
	case "zuno":
		return productID == 1
	}
	return false
}

var registry = buildRegistry()

func buildRegistry() []Insurer {
	names := []string{
		"icici", "digit", "reliance", "hdfc", "bajaj", "tata", "sbi",
		"future", "iffco", "chola", "kotak", "acko", "magma", "zuno",
		"royalSundaram", "united", "shriram", "care", "cigna",
		"hdfcLife", "tataAIA", "hdfcHealth", "careCashless", "nivaBupa",
		"cholaPA", "oic", "tataMhg", "iciciHealth",
	}
	all := make([]Insurer, 0, len(names))
	for _, name := range names {
		ins := Insurer{name: name, column: strings.ToLower(name)}
		if name == "royalSundaram" {
			ins.legacyColumn = "royal"
		}
		all = append(all, ins)
	}
	return all
}

// All returns every registered insurer in registry order.
func All() []Insurer {
	out := make([]Insurer, len(registry))
	copy(out, registry)
	return out
}

// ByName resolves an insurer case-insensitively, accepting both the
// display name and the column name. The legacy "royal" alias resolves
// to royalSundaram.
func ByName(name string) (Insurer, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, ins := range registry {
		if ins.column == needle || ins.legacyColumn == needle {
			return ins, true
		}
	}
	return Insurer{}, false
}

// Columns returns every mapping column name, in registry order. Used
// by inspector reads and schema tooling.
func Columns() []string {
	cols := make([]string, 0, len(registry))
	for _, ins := range registry {
		cols = append(cols, ins.column)
	}
	return cols
}
