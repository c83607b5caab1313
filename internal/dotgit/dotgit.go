// Package dotgit reads the config file git writes inside a cloned working
// copy, used to confirm a clone and record its origin remote.
package dotgit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

type CoreSection struct {
	RepositoryFormatVersion int  `ini:"repositoryformatversion"`
	FileMode                bool `ini:"filemode"`
	Bare                    bool `ini:"bare"`
}

type RemoteSection struct {
	URL   string `ini:"url"`
	Fetch string `ini:"fetch"`
}

type BranchSection struct {
	Remote string `ini:"remote"`
	Merge  string `ini:"merge"`
}

type GitConfig struct {
	Core   CoreSection              `ini:"core"`
	Remote map[string]RemoteSection `ini:"remote"`
	Branch map[string]BranchSection `ini:"branch"`
}

// Load parses a git config file.
func Load(path string) (*GitConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	gitConfig := GitConfig{
		Remote: make(map[string]RemoteSection),
		Branch: make(map[string]BranchSection),
	}

	if err := cfg.Section("core").MapTo(&gitConfig.Core); err != nil {
		return nil, err
	}

	for _, sec := range cfg.Sections() {
		name := sec.Name()

		switch {
		case strings.HasPrefix(name, `remote "`):
			var remote RemoteSection

			if err := sec.MapTo(&remote); err != nil {
				return nil, err
			}

			gitConfig.Remote[sectionLabel(name)] = remote
		case strings.HasPrefix(name, `branch "`):
			var branch BranchSection

			if err := sec.MapTo(&branch); err != nil {
				return nil, err
			}

			gitConfig.Branch[sectionLabel(name)] = branch
		}
	}

	return &gitConfig, nil
}

// sectionLabel extracts "origin" from `remote "origin"`.
func sectionLabel(name string) string {
	start := strings.IndexByte(name, '"')
	end := strings.LastIndexByte(name, '"')

	if start < 0 || end <= start {
		return name
	}

	return name[start+1 : end]
}

// OriginURL returns the origin remote URL recorded in dir/.git/config.
func OriginURL(dir string) (string, error) {
	configFile := filepath.Join(dir, ".git", "config")

	if _, err := os.Stat(configFile); err != nil {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}

	cfg, err := Load(configFile)
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}

	origin, ok := cfg.Remote["origin"]
	if !ok || origin.URL == "" {
		return "", fmt.Errorf("no origin remote in %s", configFile)
	}

	return origin.URL, nil
}
