// Package validation provides centralized input validation logic.
// This includes bucket name validation, object key and prefix validation,
// and security checks.
//
// All caller inputs are validated before any store call is issued, so that
// caller-level misuse surfaces as a hard failure of the whole request.
package validation
