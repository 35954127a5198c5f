package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	v := Version{Major: "1", Minor: "2", Patch: "3", Metadata: "dev", Build: "abcdef"}
	if s := v.String(); s != "Version: 1.2.3-dev\nBuild: abcdef" {
		t.Fatalf("unexpected version string %q", s)
	}
	if !strings.HasPrefix(DwarfdisVersion.String(), "Version: 0.3.0") {
		t.Fatalf("unexpected version string %q", DwarfdisVersion.String())
	}
}

func TestBuildInfo(t *testing.T) {
	if bi := BuildInfo(); !strings.HasPrefix(bi, runtime.Version()+"\n") {
		t.Fatalf("unexpected build info %q", bi)
	}
}
