package commands_test

import (
	"testing"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand_DefaultReason(t *testing.T) {
	cmd, err := commands.NewCancelOrderCommand("ORD-9", "   ")

	require.NoError(t, err)
	assert.Equal(t, "cancelled by customer", cmd.Reason())
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, nil)
	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "changed my mind")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cancelled, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	last, _ := cancelled.Tracking().Last()
	assert.Equal(t, "changed my mind", last.Note)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AssignedOrderIsRefused(t *testing.T) {
	ctx := t.Context()
	o := assignedOrder(t, kernel.NewUUID(), time.Minute)
	cmd, _ := commands.NewCancelOrderCommand(o.ID(), "")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", ctx, o.ID()).Return(o, nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewCancelOrderCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Assigned, o.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}
