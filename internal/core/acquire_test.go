package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/inovacc/grabr/internal/model"
	"github.com/stretchr/testify/require"
)

// fakeCloner records clone invocations and fails the first n attempts.
type fakeCloner struct {
	failures int
	calls    []cloneCall
}

type cloneCall struct {
	url    string
	dir    string
	branch string
}

func (f *fakeCloner) Clone(_ context.Context, url, dir, branch string) error {
	f.calls = append(f.calls, cloneCall{url: url, dir: dir, branch: branch})

	if len(f.calls) <= f.failures {
		return errors.New("fatal: could not read from remote repository")
	}

	// fake a working copy so the Done state has a directory to enter
	return os.MkdirAll(dir, 0755)
}

// fakePrompter plays back canned answers and records questions.
type fakePrompter struct {
	confirms  []bool
	inputs    []string
	selects   []int
	questions []string
}

func (f *fakePrompter) Confirm(q string, def bool) bool {
	f.questions = append(f.questions, q)

	if len(f.confirms) == 0 {
		return def
	}

	answer := f.confirms[0]
	f.confirms = f.confirms[1:]

	return answer
}

func (f *fakePrompter) Input(q, def string) string {
	f.questions = append(f.questions, q)

	if len(f.inputs) == 0 {
		return def
	}

	answer := f.inputs[0]
	f.inputs = f.inputs[1:]

	return answer
}

func (f *fakePrompter) Select(q string, options []string, def int) int {
	f.questions = append(f.questions, q)

	if len(f.selects) == 0 {
		return def
	}

	answer := f.selects[0]
	f.selects = f.selects[1:]

	return answer
}

type fakeProber struct{ reachable bool }

func (f *fakeProber) SSHReachable(context.Context, string) bool { return f.reachable }

type fakeRecorder struct{ records []*model.CloneRecord }

func (f *fakeRecorder) SaveClone(rec *model.CloneRecord) error {
	f.records = append(f.records, rec)

	return nil
}

func newTestAcquirer(t *testing.T, cloner *fakeCloner, prompter *fakePrompter, reachable bool) *Acquirer {
	t.Helper()

	// the Done state chdirs into the clone; keep that inside the test dir
	// and restore afterwards
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return &Acquirer{
		Cloner:   cloner,
		Prompter: prompter,
		Prober:   &fakeProber{reachable: reachable},
		Out:      &bytes.Buffer{},
		ErrOut:   &bytes.Buffer{},
	}
}

func TestShorthandUnreachableFallsToHTTPS(t *testing.T) {
	cloner := &fakeCloner{}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, false)

	res, err := a.Run(context.Background(), "torvalds/linux", Options{AssumeYes: true})
	require.NoError(t, err)

	require.Len(t, cloner.calls, 1)
	require.Equal(t, "https://github.com/torvalds/linux.git", cloner.calls[0].url)
	require.Equal(t, "linux", cloner.calls[0].dir)
	require.Empty(t, cloner.calls[0].branch)
	require.Equal(t, "https", res.Transport)
	require.False(t, res.Fallback)
}

func TestShorthandReachableSwitchesToSSH(t *testing.T) {
	cloner := &fakeCloner{}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)

	res, err := a.Run(context.Background(), "torvalds/linux", Options{AssumeYes: true})
	require.NoError(t, err)
	require.Equal(t, "git@github.com:torvalds/linux.git", cloner.calls[0].url)
	require.Equal(t, "ssh", res.Transport)
}

func TestReachableButDeclinedKeepsHTTPS(t *testing.T) {
	cloner := &fakeCloner{}
	// first confirm: owner ok; second confirm: decline the SSH switch
	prompter := &fakePrompter{confirms: []bool{true, false}}
	a := newTestAcquirer(t, cloner, prompter, true)

	res, err := a.Run(context.Background(), "torvalds/linux", Options{})
	require.NoError(t, err)
	require.Equal(t, "https://github.com/torvalds/linux.git", cloner.calls[0].url)
	require.Equal(t, "https", res.Transport)
}

func TestSSHFailureFallsBackToHTTPS(t *testing.T) {
	cloner := &fakeCloner{failures: 1}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)

	res, err := a.Run(context.Background(), "git@github.com:user/repo.git", Options{
		TargetDir: "custom-dir",
		Branch:    "develop",
		AssumeYes: true,
	})
	require.NoError(t, err)

	require.Len(t, cloner.calls, 2)
	require.Equal(t, "git@github.com:user/repo.git", cloner.calls[0].url)
	require.Equal(t, "https://github.com/user/repo.git", cloner.calls[1].url)
	require.Equal(t, "custom-dir", cloner.calls[1].dir)
	require.Equal(t, "develop", cloner.calls[1].branch)
	require.True(t, res.Fallback)
	require.Equal(t, "https", res.Transport)
}

func TestHTTPSFailureGetsNoFallback(t *testing.T) {
	cloner := &fakeCloner{failures: 2}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, false)

	_, err := a.Run(context.Background(), "https://github.com/user/repo.git", Options{AssumeYes: true})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Len(t, cloner.calls, 1)
}

func TestDeclinedFallbackFails(t *testing.T) {
	cloner := &fakeCloner{failures: 2}
	// decline the HTTPS retry
	prompter := &fakePrompter{confirms: []bool{false}}
	a := newTestAcquirer(t, cloner, prompter, true)

	_, err := a.Run(context.Background(), "git@github.com:user/repo.git", Options{Branch: "main"})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Len(t, cloner.calls, 1)
}

func TestFallbackFailureIsTerminal(t *testing.T) {
	cloner := &fakeCloner{failures: 2}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)

	errOut := &bytes.Buffer{}
	a.ErrOut = errOut

	_, err := a.Run(context.Background(), "git@github.com:user/repo.git", Options{AssumeYes: true})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Len(t, cloner.calls, 2)

	// terminal failure prints the diagnostic checklist
	require.Contains(t, errOut.String(), "permission")
	require.Contains(t, errOut.String(), "branch")
}

func TestBlankBranchPromptOmitsBranchFlag(t *testing.T) {
	cloner := &fakeCloner{}
	// owner confirmed, transport prompt skipped (unreachable), blank branch
	prompter := &fakePrompter{confirms: []bool{true}, inputs: []string{""}}
	a := newTestAcquirer(t, cloner, prompter, false)

	_, err := a.Run(context.Background(), "owner/name", Options{})
	require.NoError(t, err)
	require.Empty(t, cloner.calls[0].branch)
}

func TestBranchPromptAnswerIsUsed(t *testing.T) {
	cloner := &fakeCloner{}
	prompter := &fakePrompter{confirms: []bool{true}, inputs: []string{"develop"}}
	a := newTestAcquirer(t, cloner, prompter, false)

	res, err := a.Run(context.Background(), "owner/name", Options{})
	require.NoError(t, err)
	require.Equal(t, "develop", cloner.calls[0].branch)
	require.Equal(t, "develop", res.Branch)
}

func TestOwnerOverride(t *testing.T) {
	cloner := &fakeCloner{}
	// decline the owner, type a new one, then blank branch
	prompter := &fakePrompter{confirms: []bool{false}, inputs: []string{"realowner", ""}}
	a := newTestAcquirer(t, cloner, prompter, false)

	_, err := a.Run(context.Background(), "typo/name", Options{})
	require.NoError(t, err)
	require.Equal(t, "https://github.com/realowner/name.git", cloner.calls[0].url)
}

func TestOtherURLUsedVerbatim(t *testing.T) {
	cloner := &fakeCloner{}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)

	res, err := a.Run(context.Background(), "git://example.com/pub/repo.git", Options{AssumeYes: true})
	require.NoError(t, err)
	require.Equal(t, "git://example.com/pub/repo.git", cloner.calls[0].url)
	require.Equal(t, "other", res.Transport)
}

func TestOtherURLFailureGetsNoFallback(t *testing.T) {
	cloner := &fakeCloner{failures: 2}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)

	_, err := a.Run(context.Background(), "git://example.com/pub/repo.git", Options{AssumeYes: true})
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Len(t, cloner.calls, 1)
}

func TestForcedTransport(t *testing.T) {
	cloner := &fakeCloner{}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, false)

	// forced ssh ignores the probe result
	res, err := a.Run(context.Background(), "owner/name", Options{
		Transport: model.TransportSSH,
		AssumeYes: true,
	})
	require.NoError(t, err)
	require.Equal(t, "git@github.com:owner/name.git", cloner.calls[0].url)
	require.Equal(t, "ssh", res.Transport)
}

func TestSuccessfulCloneIsRecorded(t *testing.T) {
	cloner := &fakeCloner{failures: 1}
	recorder := &fakeRecorder{}
	a := newTestAcquirer(t, cloner, &fakePrompter{}, true)
	a.Recorder = recorder

	_, err := a.Run(context.Background(), "git@github.com:user/repo.git", Options{AssumeYes: true})
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	require.Equal(t, "git@github.com:user/repo.git", rec.Reference)
	require.Equal(t, "https://github.com/user/repo.git", rec.URL)
	require.True(t, rec.Fallback)
	require.Equal(t, "https", rec.Transport)
}

func TestAccountAliasRewritesHost(t *testing.T) {
	cloner := &fakeCloner{}
	// owner confirm default, ssh switch default yes, pick account #1, blank branch
	prompter := &fakePrompter{selects: []int{1}}
	a := newTestAcquirer(t, cloner, prompter, true)
	a.Accounts = accountsStub{
		{Label: "work", Host: "github.com", Alias: "github.com-work"},
	}

	_, err := a.Run(context.Background(), "owner/name", Options{})
	require.NoError(t, err)
	require.Equal(t, "git@github.com-work:owner/name.git", cloner.calls[0].url)
}

type accountsStub []model.Account

func (s accountsStub) AccountsForHost(host string) ([]model.Account, error) {
	var out []model.Account

	for _, acc := range s {
		if acc.Host == host {
			out = append(out, acc)
		}
	}

	return out, nil
}

func TestInvalidReference(t *testing.T) {
	a := newTestAcquirer(t, &fakeCloner{}, &fakePrompter{}, false)

	_, err := a.Run(context.Background(), "justaname", Options{AssumeYes: true})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCloneFailed)
}
