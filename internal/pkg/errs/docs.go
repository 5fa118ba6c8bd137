// Package errs provides standardized error types for the water delivery
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes error types for the failure kinds the core
// distinguishes:
//   - ObjectNotFoundError: a referenced order or party does not exist
//   - UnauthorizedError: the caller is neither owner nor assigned supplier
//   - InvalidTransitionError: a state or role guard rejected a transition
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input such as bad coordinates or a non-positive quantity
//   - ExternalDependencyError: the store or transport is unavailable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrUnauthorized)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers can classify
//     failures with errors.Is
package errs
