// Package browser opens cited URLs in the system browser, so broken-link
// reports and the TUI can jump straight to a source.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"fieldnotes/internal/ports"
)

// Opener implements ports.URLOpener
type Opener struct{}

var _ ports.URLOpener = (*Opener)(nil)

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open launches the system browser at the given URL. Only http and https
// URLs are accepted; everything else in a note is a citation mistake, not
// something to hand to the OS.
func (o *Opener) Open(rawURL string) error {
	if err := Validate(rawURL); err != nil {
		return err
	}
	return openURL(rawURL)
}

// Validate checks that a URL is safe to hand to the system opener
func Validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open non-http URL: %s", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", rawURL)
	}
	return nil
}

func openURL(rawURL string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", rawURL)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
