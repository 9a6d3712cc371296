package executor

import "errors"

// ErrExecutionFailed indicates a schema statement failed to execute.
var ErrExecutionFailed = errors.New("schema execution failed")
