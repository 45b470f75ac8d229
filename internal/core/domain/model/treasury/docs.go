// Package treasury implements the dual-currency ledger that funds purchases.
//
// There are exactly two ledgers: the local ledger with a single main balance
// and the foreign ledger with cash and card balances. Ledgers are loaded with
// a row lock, mutated through Debit, Credit, SetBalance and Redistribute, and
// saved together with the Movement journal those calls produced.
package treasury
