//go:build !integration

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletionGeneratesScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := newTestRoot(NewCompletionCommand())
			var buf bytes.Buffer
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})

			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if buf.Len() == 0 {
				t.Errorf("completion %s produced no output", shell)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	root := newTestRoot(NewCompletionCommand())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "tcsh") {
		t.Errorf("error = %v, want invalid shell rejected", err)
	}
}
