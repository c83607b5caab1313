// Package giturl parses user-supplied repository references and renders
// transport-specific clone URLs from them.
package giturl

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultHost = "github.com"

// Kind identifies the syntactic form a reference was given in.
type Kind int

const (
	// KindShorthand is the bare "owner/name" form with no transport.
	KindShorthand Kind = iota

	// KindHTTPS is a full http(s) URL.
	KindHTTPS

	// KindSSH is an ssh:// URL or scp-like git@host:owner/name syntax.
	KindSSH

	// KindOther is any other fully-qualified URL (git://, file://, ftp://...),
	// used verbatim for cloning.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindShorthand:
		return "shorthand"
	case KindHTTPS:
		return "https"
	case KindSSH:
		return "ssh"
	default:
		return "other"
	}
}

// Reference is a parsed repository reference. Owner and Name are guaranteed
// for the Shorthand, HTTPS and SSH kinds; for KindOther only Name (derived
// from the final path segment) and Raw are meaningful.
type Reference struct {
	Kind  Kind
	Owner string
	Name  string
	Host  string
	Raw   string
}

// FullName returns the "owner/name" string.
func (r *Reference) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// HTTPSURL renders the HTTPS clone URL for the reference.
// For KindOther the raw reference is returned unchanged.
func (r *Reference) HTTPSURL() string {
	if r.Kind == KindOther {
		return r.Raw
	}

	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Name)
}

// SSHURL renders the scp-like secure-shell clone URL for the reference.
// For KindOther the raw reference is returned unchanged.
func (r *Reference) SSHURL() string {
	if r.Kind == KindOther {
		return r.Raw
	}

	return fmt.Sprintf("git@%s:%s/%s.git", r.Host, r.Owner, r.Name)
}

// SSHURLWithHost renders the secure-shell clone URL against an alternate
// host, used for per-account host aliases in ~/.ssh/config.
func (r *Reference) SSHURLWithHost(host string) string {
	if r.Kind == KindOther {
		return r.Raw
	}

	return fmt.Sprintf("git@%s:%s/%s.git", host, r.Owner, r.Name)
}

// Parse classifies a repository reference and extracts the fields the
// classified form guarantees. Supported forms:
//   - "owner/repo" or "host/owner/repo" shorthand
//   - "https://host/owner/repo[.git]" (extra path segments are dropped)
//   - "git@host:owner/repo[.git]" or "ssh://git@host/owner/repo[.git]"
//   - any other scheme-qualified URL, kept verbatim
func Parse(arg string) (*Reference, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("empty repository reference")
	}

	switch {
	case isSCPLike(arg) || hasPrefixFold(arg, "ssh://") || hasPrefixFold(arg, "git+ssh://"):
		return parseSSH(arg)
	case hasPrefixFold(arg, "https://") || hasPrefixFold(arg, "http://"):
		return parseHTTPS(arg)
	case strings.Contains(arg, "://"):
		return parseOther(arg)
	case strings.Contains(arg, "/"):
		return parseShorthand(arg)
	default:
		return nil, fmt.Errorf("invalid repository reference %q: expected owner/repo or a git URL", arg)
	}
}

func parseShorthand(arg string) (*Reference, error) {
	parts := strings.Split(strings.Trim(arg, "/"), "/")

	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid repository reference %q: owner and repo cannot be empty", arg)
		}

		return &Reference{
			Kind:  KindShorthand,
			Owner: parts[0],
			Name:  strings.TrimSuffix(parts[1], ".git"),
			Host:  defaultHost,
			Raw:   arg,
		}, nil
	case 3:
		// HOST/OWNER/REPO form
		return &Reference{
			Kind:  KindShorthand,
			Owner: parts[1],
			Name:  strings.TrimSuffix(parts[2], ".git"),
			Host:  normalizeHost(parts[0]),
			Raw:   arg,
		}, nil
	default:
		return nil, fmt.Errorf("invalid repository reference %q: expected owner/repo or host/owner/repo", arg)
	}
}

func parseHTTPS(arg string) (*Reference, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", arg, err)
	}

	owner, name, err := extractOwnerName(u.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", arg, err)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("invalid repository URL %q: missing host", arg)
	}

	return &Reference{
		Kind:  KindHTTPS,
		Owner: owner,
		Name:  name,
		Host:  normalizeHost(host),
		Raw:   arg,
	}, nil
}

func parseSSH(arg string) (*Reference, error) {
	raw := arg

	// Normalize scp-like syntax (git@github.com:owner/repo) to ssh://
	if isSCPLike(arg) {
		arg = "ssh://" + strings.Replace(arg, ":", "/", 1)
	}

	u, err := url.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid SSH repository URL %q: %w", raw, err)
	}

	if u.Scheme == "git+ssh" {
		u.Scheme = "ssh"
	}

	u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())
	if u.Host == "" {
		return nil, fmt.Errorf("invalid SSH repository URL %q: missing host", raw)
	}

	owner, name, err := extractOwnerName(u.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid SSH repository URL %q: %w", raw, err)
	}

	return &Reference{
		Kind:  KindSSH,
		Owner: owner,
		Name:  name,
		Host:  normalizeHost(u.Host),
		Raw:   raw,
	}, nil
}

func parseOther(arg string) (*Reference, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", arg, err)
	}

	if u.Host == "" && u.Scheme != "file" {
		return nil, fmt.Errorf("invalid repository URL %q: missing host", arg)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	name := strings.TrimSuffix(parts[len(parts)-1], ".git")

	return &Reference{
		Kind: KindOther,
		Name: name,
		Host: normalizeHost(u.Hostname()),
		Raw:  arg,
	}, nil
}

// extractOwnerName pulls owner and repo from a URL path, dropping anything
// beyond the first two segments. This allows cloning from deep links like
// github.com/owner/repo/blob/main/foo/bar or pull-request URLs.
func extractOwnerName(path string) (owner, name string, err error) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected owner/repo in path")
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// isSCPLike reports whether s uses scp-like syntax: user@host:path with no
// scheme prefix (e.g. git@github.com:owner/repo.git).
func isSCPLike(s string) bool {
	if strings.ContainsRune(s, '\\') {
		// Windows path
		return false
	}

	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}

	return strings.IndexByte(s[:i], '@') > 0 && !strings.Contains(s[:i], "/")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimPrefix(host, "www."))
}
