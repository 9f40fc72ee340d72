package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "filelab version "+Version) {
		t.Errorf("Info() = %q, want prefix %q", info, "filelab version "+Version)
	}
	if !strings.Contains(info, GitCommit) || !strings.Contains(info, BuildDate) {
		t.Errorf("Info() = %q, missing build metadata", info)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
