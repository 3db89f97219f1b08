package guard_test

import (
	"errors"
	"testing"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("cylinder must be created via NewCylinder")

	t.Run("built_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_guard_reports_owner_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Same(t, notConstructed, g.Validate(notConstructed))
	})

	t.Run("zero_guard_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Same(t, guard.ErrNotConstructed, g.Validate(nil))
	})
}

func TestConstructorGuard_ZeroValuesFailValidate(t *testing.T) {
	testCases := []struct {
		name     string
		validate func() error
		wantErr  error
	}{
		{"location", kernel.Location{}.Validate, kernel.ErrLocationIsNotConstructed},
		{"customer", order.Customer{}.Validate, order.ErrCustomerIsNotConstructed},
		{"item", order.Item{}.Validate, order.ErrItemIsNotConstructed},
		{"create_order_command", commands.CreateOrderCommand{}.Validate, commands.ErrCreateOrderCommandIsNotConstructed},
		{"assign_rider_command", commands.AssignRiderCommand{}.Validate, commands.ErrAssignRiderCommandIsNotConstructed},
		{"update_delivery_status_command", commands.UpdateDeliveryStatusCommand{}.Validate, commands.ErrUpdateDeliveryStatusCommandIsNotConstructed},
		{"update_rider_status_command", commands.UpdateRiderStatusCommand{}.Validate, commands.ErrUpdateRiderStatusCommandIsNotConstructed},
		{"expire_assignments_command", commands.ExpireAssignmentsCommand{}.Validate, commands.ErrExpireAssignmentsCommandIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.validate(), tc.wantErr)
		})
	}
}

func TestConstructorGuard_ConstructedValuesPass(t *testing.T) {
	loc, err := kernel.NewLocation(5.6037, -0.1870)
	require.NoError(t, err)
	require.NoError(t, loc.Validate())

	assign, err := commands.NewAssignRiderCommand("ORD-7")
	require.NoError(t, err)
	require.NoError(t, assign.Validate())

	expire, err := commands.NewExpireAssignmentsCommand(time.Now())
	require.NoError(t, err)
	require.NoError(t, expire.Validate())
}

func TestConstructorGuard_FailedConstructorReturnsUnusableValue(t *testing.T) {
	t.Run("location_off_the_map", func(t *testing.T) {
		loc, err := kernel.NewLocation(120, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
	})

	t.Run("malformed_order_id", func(t *testing.T) {
		cmd, err := commands.NewAssignRiderCommand("42")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, cmd.Validate(), commands.ErrAssignRiderCommandIsNotConstructed)
	})
}
