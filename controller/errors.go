package controller

// AppErrorCode represents gRPC-style error codes for application-level
// errors raised by Controller — never spreadsheet formula errors, which
// travel as base.CellValue{Kind: base.ValueError} instead (spec.md §7).
type AppErrorCode int

const (
	// Unknown error. Errors raised by APIs that do not return enough
	// error information may be converted to this error.
	Unknown AppErrorCode = 2

	// InvalidArgument indicates a payload's argument was invalid, e.g. a
	// formula that failed to parse.
	InvalidArgument AppErrorCode = 3

	// NotFound means a requested sheet, row, column, or cell id was not
	// present.
	NotFound AppErrorCode = 5

	// AlreadyExists means an attempt to create an entity failed because
	// one already exists under that name.
	AlreadyExists AppErrorCode = 6

	// FailedPrecondition indicates a Navigator consistency error: the
	// payload was malformed or applied to a stale Status (spec.md §7
	// item 3).
	FailedPrecondition AppErrorCode = 9

	// OutOfRange means a row/column index fell outside the sheet's
	// current extent.
	OutOfRange AppErrorCode = 11

	// Internal errors. Means some invariant expected by the underlying
	// system has been broken.
	Internal AppErrorCode = 13
)

// AppError is the typed error surface spec.md §7 item 3 requires for
// Navigator consistency errors, grounded on the teacher's AppError
// (sheet.go) — same shape, narrowed to the error codes that make sense
// for a payload applier rather than a full gRPC-style service.
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewAppError constructs an AppError.
func NewAppError(code AppErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
