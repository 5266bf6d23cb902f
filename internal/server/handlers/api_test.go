package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emcapi/emcapi/internal/core"
)

func TestParsePoint(t *testing.T) {
	point, err := ParsePoint("12.6;-3.4")
	require.NoError(t, err)
	require.Equal(t, core.Point{12.6, -3.4}, point)

	point, err = ParsePoint(" 1 , 2 ")
	require.NoError(t, err)
	require.Equal(t, core.Point{1, 2}, point)

	for _, bad := range []string{"", "1", "1;2;3", "a;b", "NaN;0", "0;+Inf", "-inf,1"} {
		_, err := ParsePoint(bad)
		require.Error(t, err, bad)
	}
}
