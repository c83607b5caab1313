package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const nodeManifest = "package.json"

// lockfile-specific package managers, checked in order; npm is the default
// when no lockfile is present.
var nodeLockfiles = []struct {
	lockfile string
	manager  string
}{
	{lockfile: "yarn.lock", manager: "yarn"},
	{lockfile: "pnpm-lock.yaml", manager: "pnpm"},
	{lockfile: "package-lock.json", manager: "npm"},
}

// SetupNode installs JavaScript dependencies when dir carries a package.json
// and the operator accepts, choosing the package manager by lockfile.
func (b *Bootstrapper) SetupNode(ctx context.Context, dir string, opts Options) error {
	if _, err := os.Stat(filepath.Join(dir, nodeManifest)); err != nil {
		return nil
	}

	if !opts.AssumeYes && !b.Prompter.Confirm(nodeManifest+" found. Install dependencies?", true) {
		return nil
	}

	manager := NodePackageManager(dir)

	if _, err := b.Runner.LookPath(manager); err != nil {
		return fmt.Errorf("%s is not installed", manager)
	}

	b.printf("Installing dependencies with %s\n", manager)

	if err := b.Runner.Run(ctx, dir, manager, "install"); err != nil {
		return fmt.Errorf("%s install: %w", manager, err)
	}

	b.printf("Dependencies installed\n")

	return nil
}

// NodePackageManager picks the package manager matching the lockfile in dir,
// falling back to npm.
func NodePackageManager(dir string) string {
	for _, candidate := range nodeLockfiles {
		if _, err := os.Stat(filepath.Join(dir, candidate.lockfile)); err == nil {
			return candidate.manager
		}
	}

	return "npm"
}
