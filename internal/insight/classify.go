package insight

import "strings"

// keywordGroups drives summary classification. Group order is fixed: the
// first group containing a match decides, so a summary mentioning both a
// cache term and a log term classifies as cache.
var keywordGroups = []struct {
	category Category
	terms    []string
}{
	{CategoryCache, []string{"cache", "cached", "缓存"}},
	{CategoryLog, []string{"log", "日志"}},
	{CategoryTemporary, []string{"temporary", "temp", "tmp", "临时"}},
	{CategoryOS, []string{"operating system", "system file", "system director", "windows", "linux", "macos", "系统"}},
	{CategoryApplication, []string{"application", "program", "software", "应用", "程序", "软件"}},
}

// Classify assigns a coarse category to summary text via case-insensitive
// bilingual keyword matching. No match yields CategoryUnknown.
func Classify(summary string) Category {
	text := strings.ToLower(summary)
	if strings.TrimSpace(text) == "" {
		return CategoryUnknown
	}
	for _, group := range keywordGroups {
		for _, term := range group.terms {
			if strings.Contains(text, term) {
				return group.category
			}
		}
	}
	return CategoryUnknown
}
