package run

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunnerOutput(t *testing.T) {
	r := ExecRunner{}

	out, err := r.Output(context.Background(), "", "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(out))
}

func TestExecRunnerRunInDir(t *testing.T) {
	r := ExecRunner{}
	dir := t.TempDir()

	require.NoError(t, r.Run(context.Background(), dir, "sh", "-c", "test \"$(pwd)\" = \""+dir+"\""))
}

func TestLookPath(t *testing.T) {
	r := ExecRunner{}

	_, err := r.LookPath("sh")
	require.NoError(t, err)

	_, err = r.LookPath("definitely-not-a-real-binary-xyz")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	r := ExecRunner{}

	require.Equal(t, 0, ExitCode(nil))

	_, err := r.Output(context.Background(), "", "sh", "-c", "exit 3")
	require.Equal(t, 3, ExitCode(err))

	_, err = r.Output(context.Background(), "", "sh", "-c", "exit 255")
	require.Equal(t, 255, ExitCode(err))

	require.Equal(t, -1, ExitCode(errors.New("not an exit error")))
}
