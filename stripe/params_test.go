package stripe

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type currency string

func (c currency) String() string { return string(c) }

func TestParams_Encode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   url.Values
	}{
		{
			name:   "given scalars, then encodes them directly",
			params: Params{"amount": 100, "capture": false, "source": "tok_visa", "rate": 1.5, "big": int64(7)},
			want: url.Values{
				"amount":  {"100"},
				"capture": {"false"},
				"source":  {"tok_visa"},
				"rate":    {"1.5"},
				"big":     {"7"},
			},
		},
		{
			name:   "given nested params, then uses bracket notation",
			params: Params{"metadata": Params{"order": "42"}, "card": map[string]any{"exp_month": 12}},
			want: url.Values{
				"metadata[order]":  {"42"},
				"card[exp_month]": {"12"},
			},
		},
		{
			name:   "given slices, then indexes each element",
			params: Params{"expand": []string{"customer", "invoice"}, "items": []Params{{"plan": "gold"}}},
			want: url.Values{
				"expand[0]":      {"customer"},
				"expand[1]":      {"invoice"},
				"items[0][plan]": {"gold"},
			},
		},
		{
			name:   "given nil values, then drops them",
			params: Params{"description": nil, "currency": "usd"},
			want:   url.Values{"currency": {"usd"}},
		},
		{
			name:   "given stringer, then uses its string form",
			params: Params{"currency": currency("usd")},
			want:   url.Values{"currency": {"usd"}},
		},
		{
			name:   "given typed string map, then nests it",
			params: Params{"metadata": map[string]string{"a": "1"}},
			want:   url.Values{"metadata[a]": {"1"}},
		},
		{
			name:   "given empty params, then encodes nothing",
			params: Params{},
			want:   url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}
