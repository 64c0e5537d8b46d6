package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionPrintsBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	for _, want := range []string{"rfi version dev", "Commit: none", "Built: unknown", "Go version:", "Platform:"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}
