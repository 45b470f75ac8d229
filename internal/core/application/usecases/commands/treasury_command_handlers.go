package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// PostTreasuryEntryCommandHandler applies a manual debit, credit or
// balance-set to one sub-account and returns the resulting balance.
type PostTreasuryEntryCommandHandler struct {
	uowFactory TreasuryUoWFactory
	audit      ports.AuditRecorder
}

func NewPostTreasuryEntryCommandHandler(
	uowFactory TreasuryUoWFactory,
	audit ports.AuditRecorder,
) PostTreasuryEntryCommandHandler {
	return PostTreasuryEntryCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h PostTreasuryEntryCommandHandler) Handle(
	ctx context.Context,
	cmd PostTreasuryEntryCommand,
) (decimal.Decimal, error) {
	if err := cmd.Validate(); err != nil {
		return decimal.Zero, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TreasuryRepository()
	ledger, err := repo.GetForUpdate(ctx, cmd.Kind())
	if err != nil {
		return decimal.Zero, err
	}

	before := ledgerState(ledger)
	memo := treasury.Memo{Reference: cmd.Reference(), At: clock()}
	switch cmd.Operation() {
	case EntryDebit:
		memo.Reason = treasury.ReasonDebit
		err = ledger.Debit(cmd.SubAccount(), cmd.Amount(), memo)
	case EntryCredit:
		memo.Reason = treasury.ReasonCredit
		err = ledger.Credit(cmd.SubAccount(), cmd.Amount(), memo)
	case EntrySetBalance:
		memo.Reason = treasury.ReasonSetBalance
		err = ledger.SetBalance(cmd.SubAccount(), cmd.Amount(), memo)
	}
	if err != nil {
		return decimal.Zero, err
	}

	if err = repo.Save(ctx, ledger); err != nil {
		return decimal.Zero, err
	}

	if err = uow.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	balance, _ := ledger.Balance(cmd.SubAccount())
	recordAudit(ctx, h.audit, ports.ActionManageTreasury, auditEntry{
		entity: ports.EntityTreasury,
		id:     namedSubject(cmd.Kind()),
		before: before,
		after:  ledgerState(ledger),
		details: map[string]any{
			"op":          string(cmd.Operation()),
			"sub_account": string(cmd.SubAccount()),
			"amount":      cmd.Amount().StringFixed(2),
			"reference":   cmd.Reference(),
		},
	})
	return balance, nil
}

// ConvertCurrencyCommandHandler buys foreign cash with local money. Both
// ledgers are locked, local first.
type ConvertCurrencyCommandHandler struct {
	uowFactory TreasuryUoWFactory
	converter  services.CurrencyConverter
	audit      ports.AuditRecorder
}

func NewConvertCurrencyCommandHandler(
	uowFactory TreasuryUoWFactory,
	converter services.CurrencyConverter,
	audit ports.AuditRecorder,
) ConvertCurrencyCommandHandler {
	return ConvertCurrencyCommandHandler{uowFactory: uowFactory, converter: converter, audit: audit}
}

func (h ConvertCurrencyCommandHandler) Handle(ctx context.Context, cmd ConvertCurrencyCommand) (decimal.Decimal, error) {
	if err := cmd.Validate(); err != nil {
		return decimal.Zero, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return decimal.Zero, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TreasuryRepository()
	local, err := repo.GetForUpdate(ctx, treasury.KindLocal)
	if err != nil {
		return decimal.Zero, err
	}
	foreign, err := repo.GetForUpdate(ctx, treasury.KindForeign)
	if err != nil {
		return decimal.Zero, err
	}

	before := ledgerState(local, foreign)
	credited, err := h.converter.Convert(local, foreign, cmd.AmountLocal(), cmd.Rate(), clock())
	if err != nil {
		return decimal.Zero, err
	}

	if err = repo.Save(ctx, local); err != nil {
		return decimal.Zero, err
	}
	if err = repo.Save(ctx, foreign); err != nil {
		return decimal.Zero, err
	}

	if err = uow.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	recordAudit(ctx, h.audit, ports.ActionManageTreasury, auditEntry{
		entity: ports.EntityTreasury,
		id:     treasurySubject,
		before: before,
		after:  ledgerState(local, foreign),
		details: map[string]any{
			"op":       "convert",
			"amount":   cmd.AmountLocal().StringFixed(2),
			"rate":     cmd.Rate().String(),
			"credited": credited.StringFixed(2),
		},
	})
	return credited, nil
}

type RedistributeForeignCommandHandler struct {
	uowFactory TreasuryUoWFactory
	audit      ports.AuditRecorder
}

func NewRedistributeForeignCommandHandler(
	uowFactory TreasuryUoWFactory,
	audit ports.AuditRecorder,
) RedistributeForeignCommandHandler {
	return RedistributeForeignCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h RedistributeForeignCommandHandler) Handle(ctx context.Context, cmd RedistributeForeignCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TreasuryRepository()
	foreign, err := repo.GetForUpdate(ctx, treasury.KindForeign)
	if err != nil {
		return err
	}

	before := ledgerState(foreign)
	memo := treasury.Memo{Reason: treasury.ReasonRedistribute, At: clock()}
	if err = foreign.Redistribute(cmd.Card(), cmd.Cash(), memo); err != nil {
		return err
	}

	if err = repo.Save(ctx, foreign); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageTreasury, auditEntry{
		entity:  ports.EntityTreasury,
		id:      namedSubject(treasury.KindForeign),
		before:  before,
		after:   ledgerState(foreign),
		details: map[string]any{"op": "redistribute"},
	})
	return nil
}
