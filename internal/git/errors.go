package git

import (
	"errors"
	"fmt"
	"strings"
)

// Common error messages from git
const (
	errMsgAuthFailed       = "Authentication failed"
	errMsgPermissionDenied = "Permission denied"
	errMsgRefNotFound      = "couldn't find remote ref"
	errMsgNotFound         = "Repository not found"
	errMsgAlreadyExists    = "already exists"
)

// GitError represents a failed git invocation.
type GitError struct {
	ExitCode int
	Stderr   string
	err      error
}

func (e *GitError) Error() string {
	if e.Stderr == "" {
		return fmt.Errorf("git command failed: %w", e.err).Error()
	}

	return fmt.Sprintf("git command failed: %s", strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}

// IsAuthRequired checks if the error indicates missing or rejected credentials
func IsAuthRequired(err error) bool {
	return containsError(err, errMsgAuthFailed) || containsError(err, errMsgPermissionDenied)
}

// IsRefNotFound checks if the error indicates the requested branch does not exist
func IsRefNotFound(err error) bool {
	return containsError(err, errMsgRefNotFound)
}

// IsRepoNotFound checks if the error indicates the remote repository does not exist
func IsRepoNotFound(err error) bool {
	return containsError(err, errMsgNotFound)
}

// IsAlreadyExists checks if the error indicates the target path already exists
func IsAlreadyExists(err error) bool {
	return containsError(err, errMsgAlreadyExists)
}

func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.Stderr != "" {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}
