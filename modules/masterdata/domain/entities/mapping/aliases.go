package mapping

import (
	"fmt"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
)

// Accepted header aliases for the business-key column of a bulk CSV.
// One shared list serves all three master tables.
var keyAliases = []string{
	"ensuredit_id", "ensureditid", "id", "rto_id", "pincode", "pin_code",
}

// Generic payload-column aliases; the insurer's own column name (and
// its legacy alias) are accepted on top of these.
var payloadAliases = []string{
	"json_payload", "payload", "data", "searchstring", "search_string",
}

func KeyAliases() []string {
	out := make([]string, len(keyAliases))
	copy(out, keyAliases)
	return out
}

func PayloadAliases(ins insurer.Insurer) []string {
	out := make([]string, 0, len(payloadAliases)+2)
	out = append(out, payloadAliases...)
	out = append(out, ins.UploadAliases()...)
	return out
}

// Columns is the resolved pair of CSV header names to read each row
// from.
type Columns struct {
	Key     string
	Payload string
}

// ResolveColumns matches CSV headers case-insensitively against the
// accepted aliases. Headers are trimmed before matching. Fails when
// either column is missing, naming the accepted aliases.
func ResolveColumns(headers []string, ins insurer.Insurer) (Columns, error) {
	var cols Columns
	accepted := PayloadAliases(ins)
	for _, h := range headers {
		hl := strings.ToLower(strings.TrimSpace(h))
		if cols.Key == "" && contains(keyAliases, hl) {
			cols.Key = strings.TrimSpace(h)
		}
		if cols.Payload == "" && contains(accepted, hl) {
			cols.Payload = strings.TrimSpace(h)
		}
	}
	if cols.Key == "" || cols.Payload == "" {
		return Columns{}, fmt.Errorf(
			"csv must contain a key column (one of %s) and a payload column (one of %s), found: %s",
			strings.Join(keyAliases, ", "),
			strings.Join(accepted, ", "),
			strings.Join(headers, ", "),
		)
	}
	return cols, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
