package story

import "fmt"

// Domain errors

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrSnapshotNotAvailable(kind string) *DomainError {
	return &DomainError{
		Code:    "SNAPSHOT_NOT_AVAILABLE",
		Message: fmt.Sprintf("%s repository not available", kind),
	}
}

func ErrCommitFetchFailed(fullName string, err error) *DomainError {
	return &DomainError{
		Code:    "COMMIT_FETCH_FAILED",
		Message: fmt.Sprintf("failed to fetch commits for %s", fullName),
		Err:     err,
	}
}
