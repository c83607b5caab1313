package core

import (
	"context"
	"fmt"
	"time"

	"github.com/inovacc/grabr/internal/run"
)

// SSHProber checks key-based secure-shell access by opening a short-lived
// non-interactive session against the host's git user. Batch mode keeps the
// probe from ever blocking on a password prompt.
type SSHProber struct {
	Runner  run.Runner
	Timeout time.Duration
}

const defaultProbeTimeout = 10 * time.Second

// SSHReachable reports whether the host accepted our key. ssh itself exits
// 255 on connection or authentication failure; hosting providers close an
// authenticated -T session with the remote status instead (GitHub uses 1
// after its greeting), so anything but 255 counts as reachable.
func (p *SSHProber) SSHReachable(ctx context.Context, host string) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	connectTimeout := int(timeout.Seconds() / 2)
	if connectTimeout < 1 {
		connectTimeout = 1
	}

	_, err := p.Runner.Output(ctx, "", "ssh",
		"-T", "git@"+host,
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=no",
		"-o", fmt.Sprintf("ConnectTimeout=%d", connectTimeout),
	)

	code := run.ExitCode(err)

	return code >= 0 && code != 255
}
