// Package bootstrap prepares a language runtime inside a freshly cloned
// working copy when its marker files are present. Every step is optional and
// best-effort: a bootstrap failure never fails the acquisition that preceded
// it.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/inovacc/grabr/internal/prompt"
	"github.com/inovacc/grabr/internal/run"
)

const (
	pythonManifest = "requirements.txt"
	venvDirName    = ".venv"
)

// interpreter version suffixes probed newest-first, plus the generic binary.
var pythonCandidates = []string{
	"python3.13",
	"python3.12",
	"python3.11",
	"python3.10",
	"python3.9",
	"python3.8",
	"python3",
}

// requiredVersionRe matches declared interpreter versions in the manifest,
// e.g. "# python_requires = 3.11" or "# python 3.10". Only comment lines and
// explicit python_requires markers count, so dependency names that happen to
// contain "python" never trigger a match.
var requiredVersionRe = regexp.MustCompile(`(?im)^(?:#\s*python[-_ ]?(?:requires?)?|python[-_]requires?)\s*[:=<>~! ]*\s*(3\.\d+)`)

// Options configures a bootstrap pass.
type Options struct {
	// AssumeYes answers every prompt with its default.
	AssumeYes bool
}

// Bootstrapper runs the optional post-clone environment steps.
type Bootstrapper struct {
	Runner   run.Runner
	Prompter prompt.Prompter
	Out      io.Writer
	ErrOut   io.Writer
}

// Run inspects dir for known manifests and offers each bootstrap step.
// Steps are independent; a failure is reported and the next step still runs.
func (b *Bootstrapper) Run(ctx context.Context, dir string, opts Options) {
	if err := b.SetupPython(ctx, dir, opts); err != nil {
		b.errf("Warning: Python environment setup failed: %v\n", err)
	}

	if err := b.SetupNode(ctx, dir, opts); err != nil {
		b.errf("Warning: Node dependency install failed: %v\n", err)
	}
}

// SetupPython creates a virtual environment and installs the manifest's
// dependencies when dir carries a requirements.txt and the operator accepts.
func (b *Bootstrapper) SetupPython(ctx context.Context, dir string, opts Options) error {
	manifest := filepath.Join(dir, pythonManifest)
	if _, err := os.Stat(manifest); err != nil {
		return nil
	}

	if !opts.AssumeYes && !b.Prompter.Confirm(pythonManifest+" found. Create a virtual environment?", true) {
		return nil
	}

	installed := b.detectInterpreters()
	if len(installed) == 0 {
		return fmt.Errorf("no Python interpreter found on PATH")
	}

	py := b.chooseInterpreter(manifest, installed, opts)

	venvDir := filepath.Join(dir, venvDirName)
	if err := b.createVenv(ctx, dir, py, venvDir); err != nil {
		return err
	}

	vpython := venvPython(venvDir)

	b.printf("Upgrading pip\n")

	if err := b.Runner.Run(ctx, dir, vpython, "-m", "pip", "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrading pip: %w", err)
	}

	b.printf("Installing dependencies from %s\n", pythonManifest)

	if err := b.Runner.Run(ctx, dir, vpython, "-m", "pip", "install", "-r", pythonManifest); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}

	b.printf("Virtual environment ready in %s\n", venvDirName)

	return nil
}

// detectInterpreters probes the fixed candidate list against PATH.
func (b *Bootstrapper) detectInterpreters() []string {
	var installed []string

	for _, candidate := range pythonCandidates {
		if _, err := b.Runner.LookPath(candidate); err == nil {
			installed = append(installed, candidate)
		}
	}

	return installed
}

// chooseInterpreter prefers the manifest's declared version when that
// interpreter is installed, otherwise asks the operator, defaulting to the
// generic python3.
func (b *Bootstrapper) chooseInterpreter(manifest string, installed []string, opts Options) string {
	if required := RequiredPythonVersion(manifest); required != "" {
		want := "python" + required

		for _, py := range installed {
			if py == want {
				b.printf("Using %s (declared in %s)\n", py, pythonManifest)

				return py
			}
		}

		b.printf("Declared interpreter %s is not installed\n", want)
	}

	def := len(installed) - 1 // generic python3 sorts last in the candidates

	if installed[def] != "python3" {
		def = 0
	}

	if opts.AssumeYes || len(installed) == 1 {
		return installed[def]
	}

	idx := b.Prompter.Select("Python interpreter to use", installed, def)
	if idx < 0 || idx >= len(installed) {
		idx = def
	}

	return installed[idx]
}

// RequiredPythonVersion scans the manifest for a declared interpreter
// version marker and returns it ("3.11"), or "" when none is declared.
func RequiredPythonVersion(manifest string) string {
	data, err := os.ReadFile(manifest)
	if err != nil {
		return ""
	}

	matches := requiredVersionRe.FindSubmatch(data)
	if matches == nil {
		return ""
	}

	return string(matches[1])
}

// createVenv builds the virtual environment with the stdlib venv module and
// falls back to the virtualenv tool when the expected activation artifact is
// missing afterwards.
func (b *Bootstrapper) createVenv(ctx context.Context, dir, py, venvDir string) error {
	b.printf("Creating virtual environment with %s\n", py)

	err := b.Runner.Run(ctx, dir, py, "-m", "venv", venvDirName)
	if err == nil && venvUsable(venvDir) {
		return nil
	}

	// broken or missing environment: clear the attempt and retry with the
	// alternate tool
	_ = os.RemoveAll(venvDir)

	b.printf("venv failed, retrying with virtualenv\n")

	if _, lookErr := b.Runner.LookPath("virtualenv"); lookErr != nil {
		return fmt.Errorf("venv failed and virtualenv is not installed")
	}

	if err := b.Runner.Run(ctx, dir, "virtualenv", "-p", py, venvDirName); err != nil {
		return fmt.Errorf("virtualenv: %w", err)
	}

	if !venvUsable(venvDir) {
		return fmt.Errorf("environment created but activation script is missing")
	}

	return nil
}

// venvUsable checks for the activation artifact venv creation must produce.
func venvUsable(venvDir string) bool {
	_, err := os.Stat(filepath.Join(venvDir, venvBinDir(), "activate"))

	return err == nil
}

func venvPython(venvDir string) string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}

	return filepath.Join(venvDir, venvBinDir(), name)
}

func venvBinDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}

	return "bin"
}

func (b *Bootstrapper) printf(format string, args ...any) {
	if b.Out != nil {
		_, _ = fmt.Fprintf(b.Out, format, args...)
	}
}

func (b *Bootstrapper) errf(format string, args ...any) {
	if b.ErrOut != nil {
		_, _ = fmt.Fprintf(b.ErrOut, format, args...)
	}
}
