package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ConfirmPurchaseResult reports what the confirmation settled.
type ConfirmPurchaseResult struct {
	AmountPaid decimal.Decimal
	CartClosed bool
}

// ConfirmPurchaseCommandHandler settles an order's purchase out of the
// foreign treasury and closes its cart when this was the last member
// waiting for purchase.
//
// Rows are locked in a fixed order (order, cart, foreign ledger) so that
// concurrent confirmations serialize on the ledger instead of deadlocking.
// Any failure rolls back the debit, the invoice and the position together.
type ConfirmPurchaseCommandHandler struct {
	uowFactory UoWFactory
	settler    services.PurchaseSettler
	audit      ports.AuditRecorder
}

func NewConfirmPurchaseCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) ConfirmPurchaseCommandHandler {
	return ConfirmPurchaseCommandHandler{
		uowFactory: uowFactory,
		settler:    services.NewPurchaseSettler(),
		audit:      audit,
	}
}

func (h ConfirmPurchaseCommandHandler) Handle(ctx context.Context, cmd ConfirmPurchaseCommand) (ConfirmPurchaseResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPurchaseResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmPurchaseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}

	var c *cart.Cart
	if cartID := o.CartID(); cartID != nil {
		if c, err = uow.CartRepository().GetForUpdate(ctx, *cartID); err != nil {
			return ConfirmPurchaseResult{}, err
		}
	}

	treasuryRepo := uow.TreasuryRepository()
	foreign, err := treasuryRepo.GetForUpdate(ctx, treasury.KindForeign)
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}

	before := mergeStates(orderState(o), ledgerState(foreign))
	paid, err := h.settler.Settle(o, foreign, cmd.Terms(), clock())
	if err != nil {
		return ConfirmPurchaseResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ConfirmPurchaseResult{}, err
	}
	if err = treasuryRepo.Save(ctx, foreign); err != nil {
		return ConfirmPurchaseResult{}, err
	}

	closed := false
	if c != nil {
		members, listErr := orderRepo.ListByCart(ctx, c.ID())
		if listErr != nil {
			return ConfirmPurchaseResult{}, listErr
		}
		if closed = c.CloseIfComplete(positionsOf(members)); closed {
			if err = uow.CartRepository().Update(ctx, c); err != nil {
				return ConfirmPurchaseResult{}, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmPurchaseResult{}, err
	}

	recordAudit(ctx, h.audit, ports.ActionConfirmPurchase, auditEntry{
		entity: ports.EntityOrder,
		id:     o.ID(),
		before: before,
		after:  mergeStates(orderState(o), ledgerState(foreign)),
		details: map[string]any{
			"amount_paid":     paid.StringFixed(2),
			"payment_method":  string(cmd.Terms().PaymentMethod),
			"purchase_method": string(cmd.Terms().PurchaseMethod),
			"cart_closed":     closed,
		},
	})
	return ConfirmPurchaseResult{AmountPaid: paid, CartClosed: closed}, nil
}
