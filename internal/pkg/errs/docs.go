// Package errs provides the error taxonomy of the fulfillment core.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type carrying the details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// KindOf maps any error chain onto one of the stable kinds the callers rely on:
//   - KindValidation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - KindNotFound: ObjectNotFoundError
//   - KindConflict: ConflictError
//   - KindInsufficientFunds: InsufficientFundsError
//   - KindInternal: anything else (storage, transport)
package errs
