// Package core implements the repository acquisition workflow: reference
// resolution, transport selection, clone execution with HTTPS fallback, and
// recording of the result.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/inovacc/grabr/internal/dotgit"
	"github.com/inovacc/grabr/internal/giturl"
	"github.com/inovacc/grabr/internal/model"
	"github.com/inovacc/grabr/internal/prompt"
)

// ErrCloneFailed is returned when neither the primary nor the fallback
// transport produced a working copy.
var ErrCloneFailed = errors.New("clone failed")

// ErrAborted is returned when the operator declines to continue.
var ErrAborted = errors.New("aborted by operator")

// Cloner runs the actual clone. Implemented by internal/git and by the TUI
// wrapper in internal/cli.
type Cloner interface {
	Clone(ctx context.Context, cloneURL, targetPath, branch string) error
}

// Prober answers whether key-based secure-shell access to a host works.
type Prober interface {
	SSHReachable(ctx context.Context, host string) bool
}

// RepoChecker looks a repository up on its hosting provider.
type RepoChecker interface {
	Exists(ctx context.Context, owner, name string) (bool, error)
}

// Recorder persists successful acquisitions. Satisfied by store.Store.
type Recorder interface {
	SaveClone(rec *model.CloneRecord) error
}

// AccountSource lists provisioned secure-shell accounts for a host.
// Satisfied by store.Store.
type AccountSource interface {
	AccountsForHost(host string) ([]model.Account, error)
}

// Options configures one acquisition run.
type Options struct {
	// TargetDir is the explicit second CLI argument; empty derives the
	// directory from the repository name.
	TargetDir string

	// Branch is the explicit third CLI argument; empty triggers the branch
	// prompt (blank answer keeps the remote default).
	Branch string

	// Transport forces "ssh" or "https"; "auto" (or empty) probes and asks.
	Transport string

	// DefaultCloneDir, when set, is prepended to derived target directories.
	DefaultCloneDir string

	// AssumeYes answers every prompt with its default.
	AssumeYes bool
}

// Result describes a finished acquisition.
type Result struct {
	Ref       *giturl.Reference
	URL       string
	Dir       string // absolute path of the working copy
	Branch    string
	Transport string
	Fallback  bool
}

// Transport values carried in Result and CloneRecord.
const (
	transportSSH   = "ssh"
	transportHTTPS = "https"
	transportOther = "other"
)

// Acquirer wires the acquisition workflow to its collaborators. Checker,
// Recorder and Accounts are optional; the rest are required.
type Acquirer struct {
	Cloner   Cloner
	Prompter prompt.Prompter
	Prober   Prober
	Checker  RepoChecker
	Recorder Recorder
	Accounts AccountSource
	Out      io.Writer
	ErrOut   io.Writer
}

// clone state machine states
type state int

const (
	stateClonePrimary state = iota
	stateEvaluateFallback
	stateCloneFallback
	stateDone
	stateFailed
)

// Run acquires the repository named by reference and returns the resulting
// working copy. On total clone failure it returns ErrCloneFailed after
// printing diagnostic guidance.
func (a *Acquirer) Run(ctx context.Context, reference string, opts Options) (*Result, error) {
	ref, err := giturl.Parse(reference)
	if err != nil {
		return nil, err
	}

	if ref.Kind == giturl.KindShorthand {
		a.confirmOwner(ref, opts)

		if err := a.checkExists(ctx, ref, opts); err != nil {
			return nil, err
		}
	}

	transport, cloneURL := a.resolveTransport(ctx, ref, opts)

	if transport == transportSSH {
		cloneURL = a.offerAccountAlias(ref, cloneURL, opts)
	}

	branch := opts.Branch
	if branch == "" && !opts.AssumeYes {
		branch = a.Prompter.Input("Branch to checkout (blank for the default branch)", "")
	}

	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = ref.Name
		if opts.DefaultCloneDir != "" {
			targetDir = filepath.Join(opts.DefaultCloneDir, ref.Name)
		}
	}

	res := &Result{
		Ref:       ref,
		URL:       cloneURL,
		Dir:       targetDir,
		Branch:    branch,
		Transport: transport,
	}

	return a.runCloneMachine(ctx, reference, res, opts)
}

// runCloneMachine drives the explicit clone/fallback state machine. Each
// iteration is one transition from (state, last result) to the next state.
func (a *Acquirer) runCloneMachine(ctx context.Context, reference string, res *Result, opts Options) (*Result, error) {
	st := stateClonePrimary

	for {
		switch st {
		case stateClonePrimary:
			a.printf("Cloning %s into %s\n", res.URL, res.Dir)

			if err := a.Cloner.Clone(ctx, res.URL, res.Dir, res.Branch); err != nil {
				a.errf("Clone failed: %v\n", err)

				st = stateEvaluateFallback
			} else {
				st = stateDone
			}

		case stateEvaluateFallback:
			// HTTPS is the fallback for a failed secure-shell clone only; a
			// failed HTTPS clone gets no secure-shell retry, since missing
			// keys are the common failure and HTTPS needs none.
			if res.Transport != transportSSH {
				st = stateFailed

				break
			}

			fallbackURL := res.Ref.HTTPSURL()

			a.printf("The secure-shell clone failed; HTTPS may succeed without keys.\n")

			if opts.AssumeYes || a.Prompter.Confirm(fmt.Sprintf("Retry over HTTPS (%s)?", fallbackURL), true) {
				res.URL = fallbackURL
				res.Transport = transportHTTPS
				res.Fallback = true
				st = stateCloneFallback
			} else {
				st = stateFailed
			}

		case stateCloneFallback:
			a.printf("Cloning %s into %s\n", res.URL, res.Dir)

			if err := a.Cloner.Clone(ctx, res.URL, res.Dir, res.Branch); err != nil {
				a.errf("Clone failed: %v\n", err)

				st = stateFailed
			} else {
				st = stateDone
			}

		case stateDone:
			a.finish(reference, res)

			return res, nil

		case stateFailed:
			a.printChecklist()

			return nil, ErrCloneFailed
		}
	}
}

// confirmOwner asks the operator to confirm the owner segment of a shorthand
// reference, allowing an override.
func (a *Acquirer) confirmOwner(ref *giturl.Reference, opts Options) {
	if opts.AssumeYes {
		return
	}

	if a.Prompter.Confirm(fmt.Sprintf("Clone %q from owner %q?", ref.Name, ref.Owner), true) {
		return
	}

	if owner := a.Prompter.Input("Owner", ref.Owner); owner != "" {
		ref.Owner = owner
	}
}

// checkExists asks the hosting provider about the repository before wasting
// a clone attempt. Lookup errors (offline, rate limit) are ignored.
func (a *Acquirer) checkExists(ctx context.Context, ref *giturl.Reference, opts Options) error {
	if a.Checker == nil || ref.Host != "github.com" {
		return nil
	}

	exists, err := a.Checker.Exists(ctx, ref.Owner, ref.Name)
	if err != nil || exists {
		return nil
	}

	a.errf("Warning: %s was not found on %s (it may be private).\n", ref.FullName(), ref.Host)

	if !opts.AssumeYes && !a.Prompter.Confirm("Attempt the clone anyway?", true) {
		return ErrAborted
	}

	return nil
}

// resolveTransport decides the transport for the primary clone attempt.
// Shorthand and HTTPS references get a default-yes offer to switch to the
// secure-shell form when the probe authenticates; SSH references are used
// as given; other URLs are used verbatim.
func (a *Acquirer) resolveTransport(ctx context.Context, ref *giturl.Reference, opts Options) (string, string) {
	switch {
	case ref.Kind == giturl.KindOther:
		return transportOther, ref.Raw
	case opts.Transport == model.TransportSSH:
		return transportSSH, ref.SSHURL()
	case opts.Transport == model.TransportHTTPS:
		return transportHTTPS, ref.HTTPSURL()
	case ref.Kind == giturl.KindSSH:
		return transportSSH, ref.SSHURL()
	}

	if a.Prober != nil && a.Prober.SSHReachable(ctx, ref.Host) {
		a.printf("Secure-shell access to %s is available.\n", ref.Host)

		if opts.AssumeYes || a.Prompter.Confirm(fmt.Sprintf("Clone over secure shell (%s)?", ref.SSHURL()), true) {
			return transportSSH, ref.SSHURL()
		}
	}

	return transportHTTPS, ref.HTTPSURL()
}

// offerAccountAlias rewrites the secure-shell URL host to a provisioned
// ~/.ssh/config alias when the operator has accounts for the host.
func (a *Acquirer) offerAccountAlias(ref *giturl.Reference, cloneURL string, opts Options) string {
	if a.Accounts == nil || opts.AssumeYes {
		return cloneURL
	}

	accounts, err := a.Accounts.AccountsForHost(ref.Host)
	if err != nil || len(accounts) == 0 {
		return cloneURL
	}

	options := []string{fmt.Sprintf("default identity (%s)", ref.Host)}
	for _, acc := range accounts {
		options = append(options, fmt.Sprintf("%s (%s)", acc.Label, acc.Alias))
	}

	idx := a.Prompter.Select("Account to clone with", options, 0)
	if idx <= 0 || idx > len(accounts) {
		return cloneURL
	}

	return ref.SSHURLWithHost(accounts[idx-1].Alias)
}

// finish changes the working context into the clone and records it.
func (a *Acquirer) finish(reference string, res *Result) {
	abs, err := filepath.Abs(res.Dir)
	if err == nil {
		res.Dir = abs
	}

	if err := os.Chdir(res.Dir); err != nil {
		a.errf("Warning: cannot change into %s: %v\n", res.Dir, err)
	}

	if origin, err := dotgit.OriginURL(res.Dir); err == nil {
		a.printf("Cloned %s (origin %s)\n", res.Dir, origin)
	} else {
		a.printf("Cloned %s\n", res.Dir)
	}

	if a.Recorder != nil {
		rec := &model.CloneRecord{
			Reference: reference,
			URL:       res.URL,
			Path:      res.Dir,
			Branch:    res.Branch,
			Transport: res.Transport,
			Fallback:  res.Fallback,
		}

		if err := a.Recorder.SaveClone(rec); err != nil {
			a.errf("Warning: could not record clone: %v\n", err)
		}
	}
}

// printChecklist prints likely causes after a terminal clone failure.
func (a *Acquirer) printChecklist() {
	a.errf("The repository could not be cloned. Check that:\n")
	a.errf("  - the URL and owner/name are correct\n")
	a.errf("  - you have permission to read the repository\n")
	a.errf("  - the requested branch exists\n")
	a.errf("  - your credentials or keys are set up for the chosen transport\n")
	a.errf("  - the host is reachable from this network\n")
}

func (a *Acquirer) printf(format string, args ...any) {
	if a.Out != nil {
		_, _ = fmt.Fprintf(a.Out, format, args...)
	}
}

func (a *Acquirer) errf(format string, args ...any) {
	if a.ErrOut != nil {
		_, _ = fmt.Fprintf(a.ErrOut, format, args...)
	}
}
