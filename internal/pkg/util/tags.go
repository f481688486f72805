package util

import (
	"strings"
	"unicode/utf8"
)

const MaxTagRunes = 64

// NormalizeTag 去空白、去前导 #、转小写
func NormalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	tag = strings.TrimLeft(tag, "#")
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags 归一化并去重，保留首次出现的顺序，丢弃空标签和超长标签
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		tag := NormalizeTag(r)
		if tag == "" || utf8.RuneCountInString(tag) > MaxTagRunes {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
