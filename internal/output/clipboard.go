// Package output copies calculator results to the desktop clipboard.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/rbright/caltwo/internal/config"
)

const copyTimeout = 2 * time.Second

// ErrNothingToCopy is returned for blank and error displays.
var ErrNothingToCopy = errors.New("nothing to copy")

type Copier struct {
	argv   []string
	logger *slog.Logger
}

func NewCopier(cfg config.Config, logger *slog.Logger) *Copier {
	return &Copier{argv: cfg.Clipboard.Argv, logger: logger}
}

// Copy pipes display into the clipboard command.
func (c *Copier) Copy(ctx context.Context, display string) error {
	if display == "" || display == "Error" {
		return fmt.Errorf("%w: display is %q", ErrNothingToCopy, display)
	}

	ctx, cancel := context.WithTimeout(ctx, copyTimeout)
	defer cancel()
	if err := pipeTo(ctx, c.argv, display); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("display copied", "command", c.argv[0], "length", len(display))
	}
	return nil
}

// pipeTo runs argv with input on stdin. A failing command's stderr is folded
// into the returned error.
func pipeTo(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return errors.New("clipboard command is empty")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
	}
	return fmt.Errorf("%s: %w", argv[0], err)
}
