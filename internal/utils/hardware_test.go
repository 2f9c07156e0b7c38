package utils

import (
	"strings"
	"testing"
)

func TestTerminalIDFrom(t *testing.T) {
	a := terminalIDFrom("00:1a:2b:3c:4d:5e")
	b := terminalIDFrom("00:1a:2b:3c:4d:5e")
	c := terminalIDFrom("00:1a:2b:3c:4d:5f")

	if a != b {
		t.Errorf("Expected stable id, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Different interfaces must not share an id")
	}
	if !strings.HasPrefix(a, "POS-") || len(a) != len("POS-")+8 {
		t.Errorf("Unexpected id format %s", a)
	}
	if strings.Contains(a, "1A:2B") {
		t.Error("MAC address must not leak into the id")
	}
	if got := terminalIDFrom(""); got != "POS-UNKNOWN" {
		t.Errorf("Expected POS-UNKNOWN, got %s", got)
	}
}

func TestTerminalIDNeverEmpty(t *testing.T) {
	if TerminalID() == "" {
		t.Error("TerminalID must never be empty")
	}
}
