// Package services holds the domain logic that spans more than one aggregate
// or belongs to none.
//
// The package includes:
//   - the pricing engine: ToLocalPrice, WithCommission, DepositAmount,
//     AdjustForShipping and Quote, pure functions rounded to two places
//   - PurchaseSettler: debits the foreign ledger and confirms an order's purchase
//   - CurrencyConverter: moves money from the local ledger into foreign cash
package services
