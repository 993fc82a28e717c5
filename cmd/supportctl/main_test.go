package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestClassifyCmd(t *testing.T) {
	if got := run(t, "", "classify", "Tengo", "un", "reclamo"); !strings.HasPrefix(got, "complaint\t") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestHoursCmd(t *testing.T) {
	t.Setenv("HOLIDAYS", "")
	got := run(t, "", "hours", "--at", "2025-10-14T10:00:00-03:00")
	if !strings.HasPrefix(got, "open") {
		t.Fatalf("unexpected output %q", got)
	}
	got = run(t, "", "hours", "--at", "2025-10-14T20:00:00-03:00")
	if !strings.HasPrefix(got, "closed") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestChatCmd(t *testing.T) {
	t.Setenv("LOOKUP_URL", "")
	got := run(t, "mi dni es 30.123.456\nmi credencial\n", "chat")
	if !strings.Contains(got, "guardé tu DNI: 30.123.456") || !strings.Contains(got, "Credencial digital") {
		t.Fatalf("unexpected transcript %q", got)
	}
}
