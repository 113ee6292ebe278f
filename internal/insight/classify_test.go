package insight

import "testing"

func TestClassifyBilingualKeywords(t *testing.T) {
	cases := []struct {
		name    string
		summary string
		want    Category
	}{
		{"chinese cache", "这是浏览器缓存目录", CategoryCache},
		{"english cache", "Browser cache directory for Chromium", CategoryCache},
		{"log beats application", "application log files", CategoryLog},
		{"chinese log", "系统运行日志", CategoryLog},
		{"temporary", "Temporary files left by the installer", CategoryTemporary},
		{"os", "Core operating system components", CategoryOS},
		{"application", "Installed application binaries", CategoryApplication},
		{"no keyword", "family vacation photos from 2019", CategoryUnknown},
		{"empty", "   ", CategoryUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.summary); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.summary, got, tc.want)
			}
		})
	}
}

func TestClassifyGroupOrderWins(t *testing.T) {
	// Both a cache term and a log term appear; cache is the earlier group.
	if got := Classify("cache directory holding rotated log files"); got != CategoryCache {
		t.Fatalf("expected cache to win over log, got %q", got)
	}
}
