package treasury

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger constructor")

// Kind identifies one of the two singleton ledgers.
type Kind string

const (
	KindLocal   Kind = "local"
	KindForeign Kind = "foreign"
)

// SubAccount is a balance inside a ledger. The local ledger holds Main only;
// the foreign ledger holds Cash and Card.
type SubAccount string

const (
	Main SubAccount = "main"
	Cash SubAccount = "cash"
	Card SubAccount = "card"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLocal, KindForeign:
		return Kind(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not local or foreign", s))
	}
}

func ParseSubAccount(s string) (SubAccount, error) {
	switch SubAccount(s) {
	case Main, Cash, Card:
		return SubAccount(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("sub-account", fmt.Errorf("%q is not main, cash or card", s))
	}
}

// SubAccounts lists the balances a ledger of this kind holds.
func (k Kind) SubAccounts() []SubAccount {
	switch k {
	case KindLocal:
		return []SubAccount{Main}
	case KindForeign:
		return []SubAccount{Cash, Card}
	default:
		return nil
	}
}

// Memo describes why a ledger changed.
type Memo struct {
	Reason    Reason
	Reference string
	At        time.Time
}

// Ledger is a treasury aggregate holding one currency's balances. Every
// mutation is recorded as a pending Movement; the repository persists the
// movements alongside the balances and then clears them.
//
// No balance ever becomes negative, and every mutating amount must be positive
// (SetBalance accepts zero).
type Ledger struct {
	kind      Kind
	balances  map[SubAccount]decimal.Decimal
	updatedAt time.Time

	movements []Movement

	guard guard.ConstructorGuard
}

// NewLedger returns a ledger of the given kind with zero balances.
func NewLedger(kind Kind, now time.Time) (*Ledger, error) {
	return RestoreLedger(kind, nil, now)
}

// RestoreLedger rebuilds a ledger from stored balances. Missing sub-accounts
// start at zero; sub-accounts foreign to the kind are rejected.
func RestoreLedger(kind Kind, balances map[SubAccount]decimal.Decimal, updatedAt time.Time) (*Ledger, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	l := &Ledger{
		kind:      kind,
		balances:  make(map[SubAccount]decimal.Decimal, len(kind.SubAccounts())),
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}
	for _, sub := range kind.SubAccounts() {
		l.balances[sub] = decimal.Zero
	}
	for sub, amount := range balances {
		if !l.holds(sub) {
			return nil, l.unknownSubAccount(sub)
		}
		if err := kernel.ValidateNonNegativeAmount(string(kind)+"/"+string(sub), amount); err != nil {
			return nil, err
		}
		l.balances[sub] = kernel.RoundMoney(amount)
	}
	return l, nil
}

func (l *Ledger) Validate() error {
	if l == nil {
		return ErrLedgerIsNotConstructed
	}
	return l.guard.Validate(ErrLedgerIsNotConstructed)
}

func (l *Ledger) Kind() Kind {
	return l.kind
}

func (l *Ledger) UpdatedAt() time.Time {
	return l.updatedAt
}

func (l *Ledger) Balance(sub SubAccount) (decimal.Decimal, error) {
	if !l.holds(sub) {
		return decimal.Zero, l.unknownSubAccount(sub)
	}
	return l.balances[sub], nil
}

// Balances returns a copy of every sub-account balance.
func (l *Ledger) Balances() map[SubAccount]decimal.Decimal {
	out := make(map[SubAccount]decimal.Decimal, len(l.balances))
	for sub, amount := range l.balances {
		out[sub] = amount
	}
	return out
}

// Total is the sum of all sub-account balances.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range l.balances {
		total = total.Add(amount)
	}
	return total
}

// Debit subtracts a positive amount. A short balance fails with
// InsufficientFundsError and leaves the ledger untouched.
func (l *Ledger) Debit(sub SubAccount, amount decimal.Decimal, memo Memo) error {
	amount = kernel.RoundMoney(amount)
	if err := l.checkMutation(sub, amount); err != nil {
		return err
	}

	balance := l.balances[sub]
	if balance.LessThan(amount) {
		return errs.NewInsufficientFundsError(l.account(sub), balance, amount)
	}

	l.apply(sub, balance.Sub(amount), amount.Neg(), memo)
	return nil
}

// Credit adds a positive amount.
func (l *Ledger) Credit(sub SubAccount, amount decimal.Decimal, memo Memo) error {
	amount = kernel.RoundMoney(amount)
	if err := l.checkMutation(sub, amount); err != nil {
		return err
	}

	l.apply(sub, l.balances[sub].Add(amount), amount, memo)
	return nil
}

// SetBalance overwrites a balance, as done by an operator after a physical count.
func (l *Ledger) SetBalance(sub SubAccount, amount decimal.Decimal, memo Memo) error {
	if !l.holds(sub) {
		return l.unknownSubAccount(sub)
	}
	if err := kernel.ValidateNonNegativeAmount("balance", amount); err != nil {
		return err
	}
	amount = kernel.RoundMoney(amount)

	l.apply(sub, amount, amount.Sub(l.balances[sub]), memo)
	return nil
}

// Redistribute reassigns the foreign total between card and cash. The parts
// must be non-negative and sum to the current total within the money tolerance.
// Card is taken as given and cash absorbs the rounding, so the total never changes.
func (l *Ledger) Redistribute(card, cash decimal.Decimal, memo Memo) error {
	if l.kind != KindForeign {
		return errs.NewValueIsInvalidErrorWithCause("currency", errors.New("only the foreign ledger can be redistributed"))
	}
	if err := errors.Join(
		kernel.ValidateNonNegativeAmount("card amount", card),
		kernel.ValidateNonNegativeAmount("cash amount", cash),
	); err != nil {
		return err
	}

	total := l.Total()
	if sum := card.Add(cash); !kernel.ApproxEqual(sum, total) {
		return errs.NewValueIsInvalidErrorWithCause("redistribution",
			fmt.Errorf("card %s + cash %s = %s does not match foreign total %s", card, cash, sum, total))
	}

	card = decimal.Min(kernel.RoundMoney(card), total)
	cash = total.Sub(card)
	l.apply(Card, card, card.Sub(l.balances[Card]), memo)
	l.apply(Cash, cash, cash.Sub(l.balances[Cash]), memo)
	return nil
}

// PendingMovements returns the movements recorded since the last ClearMovements.
func (l *Ledger) PendingMovements() []Movement {
	return l.movements
}

func (l *Ledger) ClearMovements() {
	l.movements = nil
}

func (l *Ledger) apply(sub SubAccount, balance, delta decimal.Decimal, memo Memo) {
	l.balances[sub] = balance
	l.updatedAt = memo.At
	if delta.IsZero() {
		return
	}
	l.movements = append(l.movements, newMovement(l.kind, sub, delta, memo))
}

func (l *Ledger) checkMutation(sub SubAccount, amount decimal.Decimal) error {
	if !l.holds(sub) {
		return l.unknownSubAccount(sub)
	}
	return kernel.ValidatePositiveAmount("amount", amount)
}

func (l *Ledger) holds(sub SubAccount) bool {
	for _, s := range l.kind.SubAccounts() {
		if s == sub {
			return true
		}
	}
	return false
}

func (l *Ledger) account(sub SubAccount) string {
	return string(l.kind) + "/" + string(sub)
}

func (l *Ledger) unknownSubAccount(sub SubAccount) error {
	return errs.NewValueIsInvalidErrorWithCause("sub-account",
		fmt.Errorf("%s ledger has no %q balance", l.kind, string(sub)))
}
