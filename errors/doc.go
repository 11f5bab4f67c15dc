// Package errors provides the structured error type used across seqkit.
//
// Every error raised by the library itself is an *AppError carrying a
// machine-readable code. Source producers that fail are reported as
// SOURCE_FAILURE, keyed collectors that meet a duplicate key as
// KEY_COLLISION. Errors returned by user-supplied stage functions are never
// wrapped and reach the caller untouched.
package errors
