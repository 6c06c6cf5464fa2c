package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	role, err = ParseRole(" User ")
	require.NoError(t, err)
	require.Equal(t, RoleUser, role)

	_, err = ParseRole("superuser")
	require.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole("")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleUser.Valid())
	require.False(t, Role("root").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusIsDelivering, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusIsDelivering, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusIsDelivering, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatus("lost"), OrderStatusDelivered, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("is_delivering")
	require.NoError(t, err)
	require.Equal(t, OrderStatusIsDelivering, status)

	_, err = ParseOrderStatus("in-transit")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
