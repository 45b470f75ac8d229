// Package order implements the Order aggregate root and the fulfillment
// state machine it moves through.
//
// The package includes:
//   - Order: identity, position, container membership and lifecycle transitions
//   - Position: the single enumeration of persisted position codes
//   - Detail: product attributes and delivery destination
//   - Pricing: the quote snapshot taken at creation
//   - Invoice: the financial record populated at purchase confirmation
//
// Key business rules:
//   - Orders start at New and join a purchase cart only while pre-purchase
//   - Confirmation is accepted only from UnderPurchase and fills the invoice in place
//   - Only Purchased or ReceivedAbroad orders can be packed into a box
//   - Cancelling archives the order; archived orders reject every transition
package order
