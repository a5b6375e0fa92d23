package analysis

import "fmt"

// QuotaExceededError indicates the free-tier analysis limit was reached.
type QuotaExceededError struct {
	Tier  string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("usage limit exceeded for %s tier (limit %d)", e.Tier, e.Limit)
}

// DescribeError wraps a failure from the vision provider. Never retried;
// one provider failure fails the whole request.
type DescribeError struct {
	Cause error
}

func (e *DescribeError) Error() string {
	return fmt.Sprintf("description service failure: %v", e.Cause)
}

func (e *DescribeError) Unwrap() error {
	return e.Cause
}
