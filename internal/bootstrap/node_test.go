package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodePackageManager(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{name: "no lockfile defaults to npm", files: nil, expected: "npm"},
		{name: "yarn lockfile", files: []string{"yarn.lock"}, expected: "yarn"},
		{name: "pnpm lockfile", files: []string{"pnpm-lock.yaml"}, expected: "pnpm"},
		{name: "npm lockfile", files: []string{"package-lock.json"}, expected: "npm"},
		{name: "yarn wins over npm lockfile", files: []string{"yarn.lock", "package-lock.json"}, expected: "yarn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeManifest(t, dir, f, "")
			}

			require.Equal(t, tt.expected, NodePackageManager(dir))
		})
	}
}

func TestSetupNodeNoManifestIsNoop(t *testing.T) {
	runner := &scriptRunner{installed: map[string]bool{"npm": true}}
	b := newBootstrapper(runner, yesPrompter{})

	require.NoError(t, b.SetupNode(context.Background(), t.TempDir(), Options{}))
	require.Empty(t, runner.calls)
}

func TestSetupNodeInstalls(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, nodeManifest, "{}\n")
	writeManifest(t, dir, "yarn.lock", "")

	runner := &scriptRunner{installed: map[string]bool{"yarn": true, "npm": true}}
	b := newBootstrapper(runner, yesPrompter{})

	require.NoError(t, b.SetupNode(context.Background(), dir, Options{}))
	require.Equal(t, []string{"yarn install"}, runner.calls)
}

func TestSetupNodeDeclined(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, nodeManifest, "{}\n")

	runner := &scriptRunner{installed: map[string]bool{"npm": true}}
	b := newBootstrapper(runner, noPrompter{})

	require.NoError(t, b.SetupNode(context.Background(), dir, Options{}))
	require.Empty(t, runner.calls)
}

func TestSetupNodeManagerMissing(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, nodeManifest, "{}\n")
	writeManifest(t, dir, "pnpm-lock.yaml", "")

	runner := &scriptRunner{installed: map[string]bool{"npm": true}}
	b := newBootstrapper(runner, yesPrompter{})

	err := b.SetupNode(context.Background(), dir, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pnpm")
}

func TestSetupNodeAssumeYesSkipsPrompt(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, nodeManifest, "{}\n")

	runner := &scriptRunner{installed: map[string]bool{"npm": true}}
	b := newBootstrapper(runner, noPrompter{})

	require.NoError(t, b.SetupNode(context.Background(), dir, Options{AssumeYes: true}))
	require.Equal(t, []string{"npm install"}, runner.calls)
}
