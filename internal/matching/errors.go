package matching

import "fmt"

// NotFoundError reports a lookup for an entity that does not exist.
type NotFoundError struct {
	Kind string // "requirement", "talent", "match"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// RepositoryError wraps a storage failure with the operation that hit it.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository operation %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// InvalidStatusError reports a status transition outside the closed set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid match status %q", e.Status)
}
