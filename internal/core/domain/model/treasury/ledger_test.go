package treasury_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func foreignLedger(t *testing.T, cash, card string) *treasury.Ledger {
	t.Helper()
	l, err := treasury.RestoreLedger(treasury.KindForeign, map[treasury.SubAccount]decimal.Decimal{
		treasury.Cash: dec(cash),
		treasury.Card: dec(card),
	}, at)
	require.NoError(t, err)
	return l
}

func balance(t *testing.T, l *treasury.Ledger, sub treasury.SubAccount) string {
	t.Helper()
	b, err := l.Balance(sub)
	require.NoError(t, err)
	return b.StringFixed(2)
}

func TestRestoreLedger(t *testing.T) {
	t.Run("should zero missing sub-accounts", func(t *testing.T) {
		l, err := treasury.NewLedger(treasury.KindLocal, at)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.Equal(t, "0.00", balance(t, l, treasury.Main))
	})

	t.Run("should reject sub-account of the other ledger", func(t *testing.T) {
		_, err := treasury.RestoreLedger(treasury.KindLocal, map[treasury.SubAccount]decimal.Decimal{treasury.Cash: dec("1")}, at)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative balance", func(t *testing.T) {
		_, err := treasury.RestoreLedger(treasury.KindLocal, map[treasury.SubAccount]decimal.Decimal{treasury.Main: dec("-1")}, at)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := treasury.NewLedger("crypto", at)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLedger_Debit(t *testing.T) {
	memo := treasury.Memo{Reason: treasury.ReasonPurchase, Reference: "order-1", At: at}

	t.Run("should debit and journal", func(t *testing.T) {
		l := foreignLedger(t, "500", "0")

		require.NoError(t, l.Debit(treasury.Cash, dec("120"), memo))

		assert.Equal(t, "380.00", balance(t, l, treasury.Cash))
		require.Len(t, l.PendingMovements(), 1)
		m := l.PendingMovements()[0]
		assert.Equal(t, treasury.KindForeign, m.Ledger)
		assert.Equal(t, treasury.Cash, m.SubAccount)
		assert.Equal(t, "-120", m.Amount.String())
		assert.Equal(t, treasury.ReasonPurchase, m.Reason)
		assert.Equal(t, "order-1", m.Reference)
	})

	t.Run("should refuse to overdraw and keep balance", func(t *testing.T) {
		l := foreignLedger(t, "100", "1000")

		err := l.Debit(treasury.Cash, dec("120"), memo)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, errs.KindInsufficientFunds, errs.KindOf(err))
		assert.Contains(t, err.Error(), "foreign/cash")
		assert.Equal(t, "100.00", balance(t, l, treasury.Cash))
		assert.Empty(t, l.PendingMovements())
	})

	t.Run("should allow draining to zero", func(t *testing.T) {
		l := foreignLedger(t, "0", "50")

		require.NoError(t, l.Debit(treasury.Card, dec("50"), memo))
		assert.Equal(t, "0.00", balance(t, l, treasury.Card))
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		l := foreignLedger(t, "10", "0")

		assert.ErrorIs(t, l.Debit(treasury.Cash, decimal.Zero, memo), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, l.Credit(treasury.Cash, dec("-5"), memo), errs.ErrValueIsInvalid)
	})

	t.Run("should reject amount that rounds to zero", func(t *testing.T) {
		l := foreignLedger(t, "100", "0")

		assert.ErrorIs(t, l.Debit(treasury.Cash, dec("0.004"), memo), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, l.Credit(treasury.Cash, dec("0.004"), memo), errs.ErrValueIsInvalid)
		assert.Equal(t, "100.00", balance(t, l, treasury.Cash))
		assert.Empty(t, l.PendingMovements())
	})

	t.Run("should reject sub-account of another ledger", func(t *testing.T) {
		l := foreignLedger(t, "10", "0")

		assert.ErrorIs(t, l.Debit(treasury.Main, dec("1"), memo), errs.ErrValueIsInvalid)
	})
}

func TestLedger_CreditAndSetBalance(t *testing.T) {
	l, _ := treasury.NewLedger(treasury.KindLocal, at)

	require.NoError(t, l.Credit(treasury.Main, dec("1000.005"), treasury.Memo{Reason: treasury.ReasonCredit, At: at}))
	assert.Equal(t, "1000.01", balance(t, l, treasury.Main))

	require.NoError(t, l.SetBalance(treasury.Main, dec("250"), treasury.Memo{Reason: treasury.ReasonSetBalance, At: at}))
	assert.Equal(t, "250.00", balance(t, l, treasury.Main))

	movements := l.PendingMovements()
	require.Len(t, movements, 2)
	assert.Equal(t, "-750.01", movements[1].Amount.StringFixed(2))

	assert.ErrorIs(t, l.SetBalance(treasury.Main, dec("-1"), treasury.Memo{At: at}), errs.ErrValueIsInvalid)

	l.ClearMovements()
	assert.Empty(t, l.PendingMovements())
}

func TestLedger_Redistribute(t *testing.T) {
	memo := treasury.Memo{Reason: treasury.ReasonRedistribute, At: at}

	tests := []struct {
		name     string
		card     string
		cash     string
		wantErr  bool
		wantCard string
		wantCash string
	}{
		{"exact split", "700", "300", false, "700.00", "300.00"},
		{"within tolerance", "700.005", "299.995", false, "700.01", "299.99"},
		{"one cent off is absorbed by cash", "700", "300.01", false, "700.00", "300.00"},
		{"card over total by a cent", "1000.01", "0", false, "1000.00", "0.00"},
		{"mismatch", "600", "300", true, "", ""},
		{"negative part", "1100", "-100", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := foreignLedger(t, "400", "600")

			err := l.Redistribute(dec(tt.card), dec(tt.cash), memo)

			if tt.wantErr {
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
				assert.Equal(t, "400.00", balance(t, l, treasury.Cash))
				assert.Equal(t, "600.00", balance(t, l, treasury.Card))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCard, balance(t, l, treasury.Card))
			assert.Equal(t, tt.wantCash, balance(t, l, treasury.Cash))
			assert.Equal(t, "1000.00", l.Total().StringFixed(2))
		})
	}

	t.Run("should keep the total across repeated calls", func(t *testing.T) {
		l := foreignLedger(t, "100", "0")

		require.NoError(t, l.Redistribute(dec("50.01"), dec("50"), memo))
		require.NoError(t, l.Redistribute(dec("25"), dec("75.01"), memo))

		assert.Equal(t, "100.00", l.Total().StringFixed(2))
		assert.Equal(t, "25.00", balance(t, l, treasury.Card))
		assert.Equal(t, "75.00", balance(t, l, treasury.Cash))
	})

	t.Run("should refuse the local ledger", func(t *testing.T) {
		l, _ := treasury.NewLedger(treasury.KindLocal, at)

		assert.ErrorIs(t, l.Redistribute(decimal.Zero, decimal.Zero, memo), errs.ErrValueIsInvalid)
	})
}
