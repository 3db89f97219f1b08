package queries

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/earning"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetRiderEarningsQueryHandler struct {
	db *gorm.DB
}

func NewGetRiderEarningsQueryHandler(db *gorm.DB) GetRiderEarningsQueryHandler {
	return GetRiderEarningsQueryHandler{db: db}
}

// Handle sums the ledger by status and returns the latest entries. A rider with
// no earnings gets zero totals and an empty list.
func (h GetRiderEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderEarningsQuery,
) (GetRiderEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	res := GetRiderEarningsQueryResponse{
		RiderID: query.RiderID(),
		Recent:  make([]EarningView, 0),
	}
	riderID := query.RiderID().Bytes()

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = ?), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = ?), 0),
			COUNT(*)
		FROM rider_earnings
		WHERE rider_id = ?
	`, string(earning.Pending), string(earning.Paid), riderID).
		Row().
		Scan(&res.PendingTotal, &res.PaidTotal, &res.CompletedDeliveries)
	if err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}
	res.Total = kernel.RoundMoney(res.PendingTotal + res.PaidTotal)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			delivery_fee,
			commission_rate,
			amount,
			status,
			created_at
		FROM rider_earnings
		WHERE rider_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, riderID, query.Recent()).Rows()
	if err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e         EarningView
			orderID   string
			createdAt time.Time
		)
		if err = rows.Scan(&orderID, &e.DeliveryFee, &e.CommissionRate, &e.Amount, &e.Status, &createdAt); err != nil {
			return GetRiderEarningsQueryResponse{}, err
		}
		e.OrderID = order.ID(orderID)
		e.CreatedAt = createdAt.UTC()
		res.Recent = append(res.Recent, e)
	}

	if err = rows.Err(); err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	return res, nil
}
