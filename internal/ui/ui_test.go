package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "info")

	if got, want := buf.String(), Star+" constellation info\n\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestField(t *testing.T) {
	var buf bytes.Buffer
	Field(&buf, "nodes", 52)
	Field(&buf, "threshold", "409.6px")

	want := "  nodes:       52\n  threshold:   409.6px\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
