package giturl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseShorthand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantName  string
		wantHost  string
	}{
		{
			name:      "owner/repo",
			input:     "torvalds/linux",
			wantOwner: "torvalds",
			wantName:  "linux",
			wantHost:  "github.com",
		},
		{
			name:      "trailing .git stripped",
			input:     "owner/repo.git",
			wantOwner: "owner",
			wantName:  "repo",
			wantHost:  "github.com",
		},
		{
			name:      "host/owner/repo",
			input:     "gitlab.com/group/project",
			wantOwner: "group",
			wantName:  "project",
			wantHost:  "gitlab.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, KindShorthand, ref.Kind)
			require.Equal(t, tt.wantOwner, ref.Owner)
			require.Equal(t, tt.wantName, ref.Name)
			require.Equal(t, tt.wantHost, ref.Host)
		})
	}
}

func TestParseHTTPS(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantName  string
		wantHost  string
	}{
		{
			name:      "plain https",
			input:     "https://github.com/owner/name.git",
			wantOwner: "owner",
			wantName:  "name",
			wantHost:  "github.com",
		},
		{
			name:      "no .git suffix",
			input:     "https://github.com/owner/name",
			wantOwner: "owner",
			wantName:  "name",
			wantHost:  "github.com",
		},
		{
			name:      "deep link to file",
			input:     "https://github.com/owner/name/blob/main/foo/bar.go#L10",
			wantOwner: "owner",
			wantName:  "name",
			wantHost:  "github.com",
		},
		{
			name:      "www stripped",
			input:     "https://www.github.com/owner/name",
			wantOwner: "owner",
			wantName:  "name",
			wantHost:  "github.com",
		},
		{
			name:      "other host",
			input:     "http://gitlab.example.org/owner/name.git",
			wantOwner: "owner",
			wantName:  "name",
			wantHost:  "gitlab.example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, KindHTTPS, ref.Kind)
			require.Equal(t, tt.wantOwner, ref.Owner)
			require.Equal(t, tt.wantName, ref.Name)
			require.Equal(t, tt.wantHost, ref.Host)
		})
	}
}

func TestParseSSH(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantName  string
		wantHost  string
	}{
		{
			name:      "scp-like",
			input:     "git@github.com:user/repo.git",
			wantOwner: "user",
			wantName:  "repo",
			wantHost:  "github.com",
		},
		{
			name:      "ssh scheme",
			input:     "ssh://git@github.com/user/repo.git",
			wantOwner: "user",
			wantName:  "repo",
			wantHost:  "github.com",
		},
		{
			name:      "git+ssh scheme",
			input:     "git+ssh://git@gitlab.com/user/repo",
			wantOwner: "user",
			wantName:  "repo",
			wantHost:  "gitlab.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, KindSSH, ref.Kind)
			require.Equal(t, tt.wantOwner, ref.Owner)
			require.Equal(t, tt.wantName, ref.Name)
			require.Equal(t, tt.wantHost, ref.Host)
		})
	}
}

func TestParseOther(t *testing.T) {
	ref, err := Parse("git://example.com/some/deep/path/repo.git")
	require.NoError(t, err)
	require.Equal(t, KindOther, ref.Kind)
	require.Equal(t, "repo", ref.Name)
	require.Equal(t, "git://example.com/some/deep/path/repo.git", ref.Raw)

	// verbatim round-trip for foreign URLs
	require.Equal(t, ref.Raw, ref.HTTPSURL())
	require.Equal(t, ref.Raw, ref.SSHURL())
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"justaname",
		"a/b/c/d",
		"//",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
		})
	}
}

func TestCloneURLRendering(t *testing.T) {
	ref, err := Parse("owner/name")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/owner/name.git", ref.HTTPSURL())
	require.Equal(t, "git@github.com:owner/name.git", ref.SSHURL())
	require.Equal(t, "git@github.com-work:owner/name.git", ref.SSHURLWithHost("github.com-work"))
	require.Equal(t, "owner/name", ref.FullName())
}

func TestFallbackEquivalence(t *testing.T) {
	// the HTTPS fallback of a failed SSH URL keeps owner and name intact
	ref, err := Parse("git@github.com:user/repo.git")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/user/repo.git", ref.HTTPSURL())
}
