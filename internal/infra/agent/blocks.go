package agent

import (
	"strings"

	"foundry-catchup/internal/domain/entity"
)

// ParseBlocks parses model output in the block format:
//
//	Headline: ...
//	Summary: ...
//	Link: ...
//	Why it matters: ...
//	---
//
// Field keys are matched case-insensitively. Lines without a known key are
// skipped, as are blocks that yield no fields at all.
func ParseBlocks(text string) []entity.ContentItem {
	if text == "" {
		return nil
	}

	var items []entity.ContentItem
	for _, block := range strings.Split(text, "---") {
		item := parseBlock(block)
		if item.Empty() {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parseBlock(block string) entity.ContentItem {
	var item entity.ContentItem
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := splitField(line)
		if !ok {
			continue
		}
		switch key {
		case "headline":
			item.Headline = value
		case "summary":
			item.Summary = value
		case "link":
			item.Link = value
		case "why it matters":
			item.Why = value
		case "source":
			item.Source = value
		}
	}
	return item
}

// splitField splits "Key: value" and lowercases the key. The value keeps its
// own case and inner colons.
func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(line[:idx])), strings.TrimSpace(line[idx+1:]), true
}
