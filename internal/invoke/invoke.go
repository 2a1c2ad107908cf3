// Package invoke runs the external breeze executable synchronously and
// captures its output. It is the only layer that touches os/exec; the
// public operations are thin argument lists over a single Run call.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yossideutsch/breezeway/internal/binpath"
	"github.com/yossideutsch/breezeway/internal/transcript"
)

// DefaultMaxOutput caps captured stdout and stderr when no limit is set.
const DefaultMaxOutput = 1 << 20 // 1 MB

// Invoker launches the breeze executable and waits for it to exit. The
// binary is resolved afresh on every call. The zero value is usable: default
// resolution, no timeout, default output cap, no transcript recording.
type Invoker struct {
	Resolver  binpath.Resolver
	Timeout   time.Duration    // 0 means no timeout; a hung child blocks the caller
	MaxOutput int              // per-stream output cap in bytes; 0 means DefaultMaxOutput
	Store     transcript.Store // optional; records every invocation when set
}

// Run executes breeze with the given arguments, piping input to the child's
// stdin when non-empty, and blocks until the child exits. On exit 0 it
// returns stdout with surrounding whitespace trimmed. On non-zero exit the
// error message is the captured stderr, or the raw exit description when
// stderr is empty. A process that fails to launch yields an error wrapping
// the underlying OS failure.
func (inv *Invoker) Run(ctx context.Context, args []string, input string) (string, error) {
	bin, err := inv.Resolver.Resolve()
	if err != nil {
		return "", err
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	maxOutput := inv.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	start := time.Now()
	runErr := cmd.Run()
	inv.record(args, stdout.Bytes(), stderr.Bytes(), runErr, start)

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = runErr.Error()
			}
			return "", errors.New(msg)
		}
		// The child never ran: missing, unreadable, or not executable.
		return "", fmt.Errorf("executing %s: %w", bin, runErr)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// record saves a transcript of the invocation when a store is attached.
// Saving is best effort; a store failure never fails the invocation.
func (inv *Invoker) record(args []string, stdout, stderr []byte, runErr error, start time.Time) {
	if inv.Store == nil {
		return
	}

	exitCode := 0
	if runErr != nil {
		exitCode = -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}

	_ = inv.Store.Save(&transcript.Record{
		ID:       uuid.New().String(),
		Args:     args,
		ExitCode: exitCode,
		Stdout:   string(stdout),
		Stderr:   string(stderr),
		Started:  start,
		Duration: time.Since(start),
	})
}

// limitWriter writes up to limit bytes to buf, then silently discards the
// rest while reporting full writes to avoid short-write errors.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
