package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneArgs(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		path     string
		branch   string
		expected []string
	}{
		{
			name:     "no branch",
			url:      "https://github.com/owner/name.git",
			path:     "name",
			branch:   "",
			expected: []string{"clone", "https://github.com/owner/name.git", "name"},
		},
		{
			name:     "with branch",
			url:      "git@github.com:user/repo.git",
			path:     "custom-dir",
			branch:   "develop",
			expected: []string{"clone", "--branch", "develop", "git@github.com:user/repo.git", "custom-dir"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CloneArgs(tt.url, tt.path, tt.branch))
		})
	}
}

func TestErrorMatchers(t *testing.T) {
	authErr := &GitError{Stderr: "fatal: Authentication failed for 'https://github.com/x/y.git'"}
	require.True(t, IsAuthRequired(authErr))
	require.False(t, IsRefNotFound(authErr))

	deniedErr := &GitError{Stderr: "git@github.com: Permission denied (publickey)."}
	require.True(t, IsAuthRequired(deniedErr))

	refErr := &GitError{Stderr: "fatal: Remote branch nope not found, couldn't find remote ref nope"}
	require.True(t, IsRefNotFound(refErr))

	notFoundErr := &GitError{Stderr: "ERROR: Repository not found."}
	require.True(t, IsRepoNotFound(notFoundErr))

	existsErr := &GitError{Stderr: "fatal: destination path 'name' already exists and is not an empty directory"}
	require.True(t, IsAlreadyExists(existsErr))

	require.False(t, IsAuthRequired(nil))
	require.False(t, IsAuthRequired(errors.New("unrelated")))
}

func TestGitErrorMessage(t *testing.T) {
	wrapped := errors.New("exit status 128")
	err := &GitError{ExitCode: 128, Stderr: "fatal: repository does not exist\n", err: wrapped}
	require.Contains(t, err.Error(), "repository does not exist")
	require.ErrorIs(t, err, wrapped)
}
