package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetVersion(t *testing.T) {
	t.Cleanup(func() { SetVersion("dev", "", "") })

	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestVersionCommand(t *testing.T) {
	t.Cleanup(func() { SetVersion("dev", "", "") })
	SetVersion("2.3.4", "deadbeef", "2025-06-01")

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"atlaspack 2.3.4", "commit: deadbeef", "built: 2025-06-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"pack": false, "compare": false, "fit": false, "project": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}

	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("root command missing --verbose")
	}
}
