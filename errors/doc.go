// Package errors provides the structured error type used across nexus.
//
// Every failure that crosses a stage, adapter or coordinator boundary is an
// *AppError carrying a machine-readable ErrorCode. Adapters never return
// these as Go errors from Process; they are placed in a Report's Cause so
// callers can branch on the code instead of on error identity.
package errors
