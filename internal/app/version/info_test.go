package version

import (
	"strings"
	"testing"
)

func TestGetFullVersion(t *testing.T) {
	prevTime, prevCommit := BuildTime, Commit
	t.Cleanup(func() { BuildTime, Commit = prevTime, prevCommit })

	BuildTime, Commit = "2026-01-02T03:04:05Z", "abc1234"
	out := GetFullVersion()
	if !strings.HasPrefix(out, "nftmarket "+Version+" (abc1234)") {
		t.Fatalf("版本行不正确: %q", out)
	}
	if !strings.Contains(out, "2026-01-02 03:04:05 UTC") {
		t.Errorf("构建时间未格式化: %q", out)
	}

	BuildTime = "yesterday"
	if out := GetFullVersion(); !strings.Contains(out, "Built:    yesterday") {
		t.Errorf("无法解析的构建时间应原样输出: %q", out)
	}
}
