package clipboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type fakeSystem struct {
	text     string
	writeErr error
	readErr  error
	writes   int
}

func (f *fakeSystem) ReadAll() (string, error) { return f.text, f.readErr }

func (f *fakeSystem) WriteAll(text string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func TestCopyLocalUsesSystem(t *testing.T) {
	var out bytes.Buffer
	sys := &fakeSystem{}
	c := New(&out, WithSystem(sys), WithSSH(false))

	if err := c.Copy("hello"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if sys.text != "hello" {
		t.Errorf("system clipboard = %q, want 'hello'", sys.text)
	}
	if out.Len() != 0 {
		t.Errorf("OSC52 should not be written locally, got %q", out.String())
	}
}

func TestCopyOverSSHWritesOSC52(t *testing.T) {
	t.Setenv("SSH_TTY", "/dev/pts/1")

	var out bytes.Buffer
	sys := &fakeSystem{}
	c := New(&out, WithSystem(sys))

	if !c.IsSSH() {
		t.Fatal("IsSSH() should detect SSH_TTY")
	}
	if err := c.Copy("hello"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if sys.writes != 0 {
		t.Error("system clipboard should not be used over SSH")
	}
	// "hello" in base64
	if !strings.Contains(out.String(), "aGVsbG8=") {
		t.Errorf("OSC52 output = %q, want base64 payload", out.String())
	}
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	var out bytes.Buffer
	sys := &fakeSystem{writeErr: errors.New("no xclip")}
	c := New(&out, WithSystem(sys), WithSSH(false))

	if err := c.Copy("hi"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "\x1b]52;") {
		t.Errorf("expected OSC52 fallback, got %q", out.String())
	}
}

func TestPasteFallsBackToInternal(t *testing.T) {
	var out bytes.Buffer
	sys := &fakeSystem{writeErr: errors.New("no xclip"), readErr: errors.New("no xclip")}
	c := New(&out, WithSystem(sys), WithSSH(false))

	c.Copy("kept")
	got, err := c.Paste()
	if err != nil {
		t.Fatalf("Paste() error: %v", err)
	}
	if got != "kept" {
		t.Errorf("Paste() = %q, want 'kept'", got)
	}

	c.Clear()
	if got, _ := c.Paste(); got != "" {
		t.Errorf("Paste() after Clear = %q, want empty", got)
	}
}

func TestPastePrefersSystem(t *testing.T) {
	sys := &fakeSystem{text: "from system"}
	c := New(&bytes.Buffer{}, WithSystem(sys), WithSSH(false))

	if got, _ := c.Paste(); got != "from system" {
		t.Errorf("Paste() = %q, want 'from system'", got)
	}
}

func TestNilSystem(t *testing.T) {
	var out bytes.Buffer
	c := New(&out, WithSystem(nil), WithSSH(false))

	if err := c.Copy("x"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if out.Len() == 0 {
		t.Error("Copy() without a system clipboard should use OSC52")
	}
	if got, _ := c.Paste(); got != "x" {
		t.Errorf("Paste() = %q, want 'x'", got)
	}
}
