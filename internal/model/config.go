package model


// Transport preference values for Config.PreferredTransport.
const (
	TransportAuto  = "auto"
	TransportSSH   = "ssh"
	TransportHTTPS = "https"
)

// Config holds the application configuration
type Config struct {
	// DefaultCloneDir is the directory repositories are cloned into when no
	// target directory is given on the command line. Empty means the current
	// working directory.
	DefaultCloneDir string `json:"default_clone_dir"`

	// PreferredTransport is "auto" (probe and ask), "ssh" or "https".
	PreferredTransport string `json:"preferred_transport"`

	// AutoBootstrap skips the bootstrap confirmation prompts when true.
	AutoBootstrap bool `json:"auto_bootstrap"`

	// ProbeTimeoutSeconds bounds the secure-shell reachability probe.
	ProbeTimeoutSeconds int `json:"probe_timeout_seconds"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		DefaultCloneDir:     "",
		PreferredTransport:  TransportAuto,
		AutoBootstrap:       false,
		ProbeTimeoutSeconds: 10,
	}
}
