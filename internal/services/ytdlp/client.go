package ytdlp

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vodub/internal/fileutil"
)

// DefaultBinary is the yt-dlp executable name.
const DefaultBinary = "yt-dlp"

// Config captures runtime settings for video downloads.
type Config struct {
	// Binary is the yt-dlp executable (name or path).
	Binary string
	// Format is the yt-dlp format selector.
	Format string
	// Timeout bounds a single download; zero means no deadline beyond ctx.
	Timeout time.Duration
}

// Client downloads remote videos through yt-dlp.
type Client struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewClient creates a download client with the given configuration.
func NewClient(cfg Config) *Client {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Format == "" {
		cfg.Format = "bestvideo+bestaudio"
	}
	return &Client{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// Download fetches url into dest as an mp4 container. The destination must
// not exist beforehand; yt-dlp writes it atomically via its own part files.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("download: url required")
	}
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("download: destination path required")
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	args := c.buildArgs(url, dest)
	if err := c.run(ctx, c.cfg.Binary, args...); err != nil {
		return fmt.Errorf("yt-dlp: %w", err)
	}

	if err := fileutil.EnsureNonEmptyFile(dest); err != nil {
		return fmt.Errorf("yt-dlp produced no output: %w", err)
	}
	return nil
}

func (c *Client) buildArgs(url, dest string) []string {
	return []string{
		"-f", c.cfg.Format,
		"--merge-output-format", "mp4",
		"--no-playlist",
		"--no-progress",
		"-o", dest,
		url,
	}
}

func (c *Client) run(ctx context.Context, name string, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
