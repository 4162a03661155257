package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want mapping.Value
	}{
		{"", ""},
		{"   ", ""},
		{"nan", ""},
		{"NaN", ""},
		{"None", ""},
		{"NULL", ""},
		{`{"a":1}`, `{"a":1}`},
		{`  {"a":1}  `, `{"a":1}`},
		{"MH01", "MH01"},
		{"nullified", "nullified"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapping.Normalize(tt.raw), "raw %q", tt.raw)
	}
}

func TestValueEmpty(t *testing.T) {
	assert.True(t, mapping.Value("").Empty())
	assert.True(t, mapping.Value("{}").Empty())
	assert.True(t, mapping.Value(" {} ").Empty())
	assert.False(t, mapping.Value(`{"a":1}`).Empty())
	assert.False(t, mapping.Value("42").Empty())
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		current   mapping.Value
		incoming  mapping.Value
		overwrite bool
		want      mapping.Decision
	}{
		{"overwrite always updates", `{"a":1}`, `{"a":1}`, true, mapping.Update},
		{"overwrite updates even with empty incoming", `{"a":1}`, "", true, mapping.Update},
		{"fill empty current", "", `{"a":1}`, false, mapping.Update},
		{"empty object current is fillable", "{}", `{"a":1}`, false, mapping.Update},
		{"both empty skips", "", "", false, mapping.Skip},
		{"empty incoming clears a populated current", `{"a":1}`, "", false, mapping.Update},
		{"textual difference updates", `{"a":1}`, `{"a":2}`, false, mapping.Update},
		{"identical text skips", `{"a":1}`, `{"a":1}`, false, mapping.Skip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapping.Decide(tt.current, tt.incoming, tt.overwrite)
			assert.Equal(t, tt.want, got)
		})
	}
}
