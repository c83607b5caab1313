// Package git wraps the git executable for clone and inspection operations.
// Pattern inspired by github.com/cli/cli
package git

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/inovacc/grabr/internal/run"
)

// Client wraps git subprocess invocations.
type Client struct {
	GitPath string // Path to git executable
	RepoDir string // Working directory for commands, empty for cwd
	Stderr  io.Writer
	Stdin   io.Reader
	Stdout  io.Writer
}

// NewClient creates a new git client with stdio attached.
func NewClient() *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{
		GitPath: gitPath,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
}

// Command creates a git command without stdio attached
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

// CommandInteractive creates a git command with stdio attached so the
// operator sees clone progress and can answer credential prompts.
func (c *Client) CommandInteractive(ctx context.Context, args ...string) *exec.Cmd {
	cmd := c.Command(ctx, args...)
	cmd.Stderr = c.Stderr
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout

	return cmd
}

// CloneArgs builds the argument list for a clone invocation. A blank branch
// omits the --branch flag, leaving the remote's default branch in effect.
func CloneArgs(cloneURL, targetPath, branch string) []string {
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}

	return append(args, cloneURL, targetPath)
}

// Clone clones a repository interactively, streaming git's own progress
// output to the operator.
func (c *Client) Clone(ctx context.Context, cloneURL, targetPath, branch string) error {
	cmd := c.CommandInteractive(ctx, CloneArgs(cloneURL, targetPath, branch)...)

	if err := cmd.Run(); err != nil {
		return &GitError{
			ExitCode: run.ExitCode(err),
			err:      err,
		}
	}

	return nil
}

// CloneQuiet clones a repository capturing output, for use behind a TUI
// progress display.
func (c *Client) CloneQuiet(ctx context.Context, cloneURL, targetPath, branch string) error {
	cmd := c.Command(ctx, CloneArgs(cloneURL, targetPath, branch)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return &GitError{
			ExitCode: run.ExitCode(err),
			Stderr:   string(output),
			err:      err,
		}
	}

	return nil
}

// CurrentBranch returns the checked-out branch name in RepoDir.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	cmd := c.Command(ctx, "rev-parse", "--abbrev-ref", "HEAD")

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// IsRepository checks if RepoDir is inside a git repository.
func (c *Client) IsRepository(ctx context.Context) bool {
	cmd := c.Command(ctx, "rev-parse", "--git-dir")

	return cmd.Run() == nil
}
