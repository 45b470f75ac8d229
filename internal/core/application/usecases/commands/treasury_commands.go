package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrPostTreasuryEntryCommandIsNotConstructed = errors.New(
		"PostTreasuryEntryCommand must be created via NewPostTreasuryEntryCommand constructor",
	)
	ErrConvertCurrencyCommandIsNotConstructed = errors.New(
		"ConvertCurrencyCommand must be created via NewConvertCurrencyCommand constructor",
	)
	ErrRedistributeForeignCommandIsNotConstructed = errors.New(
		"RedistributeForeignCommand must be created via NewRedistributeForeignCommand constructor",
	)
)

// EntryOperation is the manual ledger write an operator posts.
type EntryOperation string

const (
	EntryDebit      EntryOperation = "debit"
	EntryCredit     EntryOperation = "credit"
	EntrySetBalance EntryOperation = "set"
)

func ParseEntryOperation(s string) (EntryOperation, error) {
	switch EntryOperation(s) {
	case EntryDebit, EntryCredit, EntrySetBalance:
		return EntryOperation(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%q is not debit, credit or set", s))
	}
}

type PostTreasuryEntryCommand struct { //nolint:recvcheck //using for validation
	operation  EntryOperation
	kind       treasury.Kind
	subAccount treasury.SubAccount
	amount     decimal.Decimal
	reference  string
	guard      guard.ConstructorGuard
}

func NewPostTreasuryEntryCommand(
	operation EntryOperation,
	kind treasury.Kind,
	subAccount treasury.SubAccount,
	amount decimal.Decimal,
	reference string,
) (PostTreasuryEntryCommand, error) {
	_, opErr := ParseEntryOperation(string(operation))
	_, kindErr := treasury.ParseKind(string(kind))
	_, subErr := treasury.ParseSubAccount(string(subAccount))

	amountErr := kernel.ValidatePositiveAmount("amount", amount)
	if operation == EntrySetBalance {
		amountErr = kernel.ValidateNonNegativeAmount("amount", amount)
	}

	if err := errors.Join(opErr, kindErr, subErr, amountErr); err != nil {
		return PostTreasuryEntryCommand{}, err
	}

	return PostTreasuryEntryCommand{
		operation:  operation,
		kind:       kind,
		subAccount: subAccount,
		amount:     amount,
		reference:  reference,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c PostTreasuryEntryCommand) Validate() error {
	return c.guard.Validate(ErrPostTreasuryEntryCommandIsNotConstructed)
}

func (c PostTreasuryEntryCommand) Operation() EntryOperation {
	return c.operation
}

func (c PostTreasuryEntryCommand) Kind() treasury.Kind {
	return c.kind
}

func (c PostTreasuryEntryCommand) SubAccount() treasury.SubAccount {
	return c.subAccount
}

func (c PostTreasuryEntryCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c PostTreasuryEntryCommand) Reference() string {
	return c.reference
}

type ConvertCurrencyCommand struct { //nolint:recvcheck //using for validation
	amountLocal decimal.Decimal
	rate        decimal.Decimal
	guard       guard.ConstructorGuard
}

func NewConvertCurrencyCommand(amountLocal, rate decimal.Decimal) (ConvertCurrencyCommand, error) {
	if err := errors.Join(
		kernel.ValidatePositiveAmount("amount", amountLocal),
		kernel.ValidatePositiveAmount("rate", rate),
	); err != nil {
		return ConvertCurrencyCommand{}, err
	}
	return ConvertCurrencyCommand{amountLocal: amountLocal, rate: rate, guard: guard.NewConstructorGuard()}, nil
}

func (c ConvertCurrencyCommand) Validate() error {
	return c.guard.Validate(ErrConvertCurrencyCommandIsNotConstructed)
}

func (c ConvertCurrencyCommand) AmountLocal() decimal.Decimal {
	return c.amountLocal
}

func (c ConvertCurrencyCommand) Rate() decimal.Decimal {
	return c.rate
}

// RedistributeForeignCommand splits the foreign total between card and cash.
type RedistributeForeignCommand struct { //nolint:recvcheck //using for validation
	card  decimal.Decimal
	cash  decimal.Decimal
	guard guard.ConstructorGuard
}

func NewRedistributeForeignCommand(card, cash decimal.Decimal) (RedistributeForeignCommand, error) {
	if err := errors.Join(
		kernel.ValidateNonNegativeAmount("card amount", card),
		kernel.ValidateNonNegativeAmount("cash amount", cash),
	); err != nil {
		return RedistributeForeignCommand{}, err
	}
	return RedistributeForeignCommand{card: card, cash: cash, guard: guard.NewConstructorGuard()}, nil
}

func (c RedistributeForeignCommand) Validate() error {
	return c.guard.Validate(ErrRedistributeForeignCommandIsNotConstructed)
}

func (c RedistributeForeignCommand) Card() decimal.Decimal {
	return c.card
}

func (c RedistributeForeignCommand) Cash() decimal.Decimal {
	return c.cash
}
