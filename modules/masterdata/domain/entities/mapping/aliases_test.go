package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

func mustInsurer(t *testing.T, name string) insurer.Insurer {
	t.Helper()
	ins, ok := insurer.ByName(name)
	require.True(t, ok)
	return ins
}

func TestResolveColumns(t *testing.T) {
	icici := mustInsurer(t, "icici")

	tests := []struct {
		name        string
		headers     []string
		ins         insurer.Insurer
		wantKey     string
		wantPayload string
		wantErr     bool
	}{
		{
			name:        "exact names",
			headers:     []string{"ensuredit_id", "json_payload"},
			ins:         icici,
			wantKey:     "ensuredit_id",
			wantPayload: "json_payload",
		},
		{
			name:        "case insensitive with whitespace",
			headers:     []string{" Ensuredit_ID ", "  Payload"},
			ins:         icici,
			wantKey:     "Ensuredit_ID",
			wantPayload: "Payload",
		},
		{
			name:        "insurer name as payload column",
			headers:     []string{"rto_id", "icici"},
			ins:         icici,
			wantKey:     "rto_id",
			wantPayload: "icici",
		},
		{
			name:        "pincode key alias",
			headers:     []string{"pin_code", "data"},
			ins:         icici,
			wantKey:     "pin_code",
			wantPayload: "data",
		},
		{
			name:        "legacy royal payload column",
			headers:     []string{"id", "royal"},
			ins:         mustInsurer(t, "royalSundaram"),
			wantKey:     "id",
			wantPayload: "royal",
		},
		{
			name:    "missing key column",
			headers: []string{"code", "payload"},
			ins:     icici,
			wantErr: true,
		},
		{
			name:    "missing payload column",
			headers: []string{"ensuredit_id", "hdfc"},
			ins:     icici,
			wantErr: true,
		},
		{
			name:    "royal not accepted for other insurers",
			headers: []string{"id", "royal"},
			ins:     icici,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := mapping.ResolveColumns(tt.headers, tt.ins)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "ensuredit_id")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cols.Key)
			assert.Equal(t, tt.wantPayload, cols.Payload)
		})
	}
}

func TestPayloadAliasesIncludeInsurerColumns(t *testing.T) {
	royal := mustInsurer(t, "royalSundaram")
	aliases := mapping.PayloadAliases(royal)
	assert.Contains(t, aliases, "royalsundaram")
	assert.Contains(t, aliases, "royal")
	assert.Contains(t, aliases, "json_payload")
}
