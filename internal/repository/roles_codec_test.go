package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRolesRoundTrip(t *testing.T) {
	cases := [][]string{
		{"Backend", "Frontend"},
		{"General"},
		{},
		nil,
	}
	for _, roles := range cases {
		decoded := decodeRoles(encodeRoles(roles))
		if len(roles) == 0 {
			require.Empty(t, decoded)
			continue
		}
		require.Equal(t, roles, decoded)
	}
}

func TestDecodeRolesTolerance(t *testing.T) {
	require.Empty(t, decodeRoles(""))
	require.Empty(t, decodeRoles("not json"))
	require.Empty(t, decodeRoles("null"))
	require.Equal(t, []string{"Backend"}, decodeRoles(`["Backend"]`))
}
