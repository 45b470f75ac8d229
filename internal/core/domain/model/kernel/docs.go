// Package kernel provides the domain primitives shared by every aggregate of
// the fulfillment core:
//   - UUID: identifier value object over github.com/google/uuid
//   - monetary helpers over github.com/shopspring/decimal: rounding to two
//     places, tolerance comparison, percent computation and amount validation
package kernel
