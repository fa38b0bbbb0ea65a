package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single engine invocation.
const DefaultTimeout = 5 * time.Second

// Command runs an engine CLI. The document is written to stdin and the
// result read from stdout:
//
//	<Path> <Args...> highlight   -> AST JSON
//	<Path> <Args...> render      -> HTML
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration // zero means DefaultTimeout
}

func (c Command) Highlight(ctx context.Context, src string) ([]byte, error) {
	return c.run(ctx, "highlight", src)
}

func (c Command) Render(ctx context.Context, src string) (string, error) {
	out, err := c.run(ctx, "render", src)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (c Command) run(ctx context.Context, sub, src string) ([]byte, error) {
	if c.Path == "" {
		return nil, fmt.Errorf("engine %s: no command configured", sub)
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string(nil), c.Args...), sub)
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdin = strings.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("engine %s: %w", sub, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("engine %s: %w: %s", sub, err, msg)
		}
		return nil, fmt.Errorf("engine %s: %w", sub, err)
	}
	return stdout.Bytes(), nil
}
