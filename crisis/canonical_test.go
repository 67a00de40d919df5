package crisis_test

import (
	"testing"

	"go-crisiswatch/crisis"
	"go-crisiswatch/types"

	"github.com/stretchr/testify/require"
)

func TestCanonicalType(t *testing.T) {
	cases := []struct {
		label string
		want  types.IssueType
	}{
		{"flood", types.TypeDisaster},
		{"Flash Flood warning", types.TypeDisaster},
		{"EARTHQUAKE", types.TypeDisaster},
		{"cyclone Amphan", types.TypeDisaster},
		{"tsunami", types.TypeDisaster},
		{"wildfire", types.TypeDisaster},
		{"disease", types.TypeDisease},
		{"EPIDEMIC", types.TypeDisease},
		{"virus outbreak", types.TypeDisease},
		{"public health emergency", types.TypeDisease},
		{"", types.TypeOthers},
		{"something else entirely", types.TypeOthers},
		{"Others", types.TypeOthers},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, crisis.CanonicalType(tc.label), "label %q", tc.label)
	}
}

func TestCanonicalTypeIdempotent(t *testing.T) {
	inputs := []string{"flood", "epidemic", "", "weird input", "disaster", "disease", "others"}
	for _, in := range inputs {
		once := crisis.CanonicalType(in)
		twice := crisis.CanonicalType(string(once))
		require.Equal(t, once, twice, "input %q", in)
		require.Contains(t, []types.IssueType{
			types.TypeDisaster, types.TypeDisease, types.TypeOthers,
		}, once)
	}
}
