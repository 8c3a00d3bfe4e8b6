package clipboard

import (
	"io"
	"os"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// System is the platform clipboard
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type atottoSystem struct{}

func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Clipboard provides unified clipboard access with OSC52 support for SSH.
// Dialog text fields copy and paste through it; methods are safe for
// concurrent use.
type Clipboard struct {
	mu sync.Mutex
	// Internal clipboard for when no system clipboard is available
	internal string
	// Whether we're likely in an SSH session
	isSSH bool
	// Output writer for OSC52 sequences (typically os.Stdout)
	output io.Writer
	system System
}

// Option configures a Clipboard
type Option func(*Clipboard)

// WithSystem replaces the platform clipboard; nil disables it
func WithSystem(s System) Option {
	return func(c *Clipboard) { c.system = s }
}

// WithSSH overrides SSH session detection
func WithSSH(ssh bool) Option {
	return func(c *Clipboard) { c.isSSH = ssh }
}

// New creates a new Clipboard instance.
func New(output io.Writer, opts ...Option) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	c := &Clipboard{
		isSSH:  isSSHSession(),
		output: output,
		system: atottoSystem{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isSSHSession detects if we're running in an SSH session.
func isSSHSession() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Copy copies the given text to the clipboard.
// In SSH sessions, it uses OSC52 escape sequences.
// Locally, it tries the system clipboard first, then falls back to OSC52.
func (c *Clipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Always store internally as a last resort
	c.internal = text

	if c.isSSH || c.system == nil {
		return c.copyOSC52(text)
	}
	if err := c.system.WriteAll(text); err != nil {
		return c.copyOSC52(text)
	}
	return nil
}

// copyOSC52 copies text using OSC52 escape sequence.
func (c *Clipboard) copyOSC52(text string) error {
	_, err := osc52.New(text).WriteTo(c.output)
	return err
}

// Paste returns text from the clipboard.
// OSC52 queries are not widely supported, so paste relies on the system
// clipboard or the internal buffer.
func (c *Clipboard) Paste() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.system != nil {
		if text, err := c.system.ReadAll(); err == nil && text != "" {
			return text, nil
		}
	}
	return c.internal, nil
}

// Clear clears the internal clipboard.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.internal = ""
}

// IsSSH returns true if we're in an SSH session.
func (c *Clipboard) IsSSH() bool {
	return c.isSSH
}
