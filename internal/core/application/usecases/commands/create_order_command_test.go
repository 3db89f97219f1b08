package commands_test

import (
	"testing"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	first, err := order.NewItem("14.5kg refill", 2, 180)
	require.NoError(t, err)
	second, err := order.NewItem("regulator", 1, 45.5)
	require.NoError(t, err)
	loc := testLocation(t, 5.61, -0.18)

	cmd, err := commands.NewCreateOrderCommand(testCustomer(t), []order.Item{first, second}, loc)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "Abena Mensah", cmd.Customer().Name())
	assert.Len(t, cmd.Items(), 2)
	assert.Same(t, loc, cmd.Location())
	assert.InDelta(t, 405.5, cmd.Total(), 1e-9)
}

func TestNewCreateOrderCommand_WithoutLocation(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(testCustomer(t), testItems(t), nil)

	require.NoError(t, err)
	assert.Nil(t, cmd.Location())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(order.Customer{}, nil, &kernel.Location{})

	require.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)
	require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}

func TestNewCreateOrderCommand_ZeroItem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(testCustomer(t), []order.Item{{}}, nil)

	require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
