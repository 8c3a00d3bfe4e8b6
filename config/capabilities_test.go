package config

import "testing"

func TestDetectTerminal(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Terminal
	}{
		{"utf8 truecolor", map[string]string{"LANG": "en_US.UTF-8", "COLORTERM": "truecolor", "TERM": "xterm"}, Terminal{true, ColorTrueColor}},
		{"LC_ALL first", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8", "TERM": "xterm-256color"}, Terminal{false, Color256}},
		{"LC_CTYPE before LANG", map[string]string{"LC_CTYPE": "de_DE.utf8", "LANG": "C", "TERM": "xterm-direct"}, Terminal{true, ColorTrueColor}},
		{"bare vt100", map[string]string{"TERM": "vt100"}, Terminal{false, Color16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG", "COLORTERM", "TERM"} {
				t.Setenv(v, tt.env[v])
			}
			if got := DetectTerminal(); got != tt.want {
				t.Errorf("DetectTerminal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDialogDisplay(t *testing.T) {
	on, off := true, false
	tests := []struct {
		name string
		dc   DialogConfig
		term Terminal
		want Display
	}{
		{"detected utf8 truecolor", DialogConfig{}, Terminal{true, ColorTrueColor}, Display{false, true}},
		{"detected plain", DialogConfig{}, Terminal{false, Color256}, Display{true, false}},
		{"ascii forced", DialogConfig{AsciiMode: &on}, Terminal{true, ColorTrueColor}, Display{true, true}},
		{"unicode forced", DialogConfig{AsciiMode: &off}, Terminal{false, Color16}, Display{false, false}},
		{"truecolor off", DialogConfig{TrueColor: &off}, Terminal{true, ColorTrueColor}, Display{false, false}},
		{"truecolor on", DialogConfig{TrueColor: &on}, Terminal{true, Color16}, Display{false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dc.Display(tt.term); got != tt.want {
				t.Errorf("Display() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColorModeString(t *testing.T) {
	for mode, want := range map[ColorMode]string{Color16: "16 colors", Color256: "256 colors", ColorTrueColor: "truecolor", ColorMode(9): "unknown"} {
		if got := mode.String(); got != want {
			t.Errorf("ColorMode(%d) = %q, want %q", mode, got, want)
		}
	}
}
