package main

import (
	"bytes"
	"testing"
	"time"
)

func TestParseInstant(t *testing.T) {
	got, err := parseInstant("2024-01-31T02:00:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := parseInstant("31/01/2024"); err == nil {
		t.Error("expected an error for a non-RFC3339 value")
	}
}

func TestCommands_RequireUser(t *testing.T) {
	for _, args := range [][]string{
		{"generate"},
		{"show", "--period-start", "2024-01-01T00:00:00Z"},
		{"cycle"},
	} {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)

		if err := cmd.Execute(); err == nil {
			t.Errorf("%v: expected missing --user error", args)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"reportsGenerated": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "{\n  \"reportsGenerated\": 2\n}\n" {
		t.Errorf("unexpected output %q", got)
	}
}
