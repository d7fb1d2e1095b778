package entity

import "testing"

func TestFeedKindValid(t *testing.T) {
	cases := []struct {
		kind FeedKind
		want bool
	}{
		{FeedNews, true},
		{FeedImprovements, true},
		{FeedKind(""), false},
		{FeedKind("sources"), false},
	}
	for _, c := range cases {
		if got := c.kind.Valid(); got != c.want {
			t.Errorf("FeedKind(%q).Valid() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestDisplayHeadline(t *testing.T) {
	if got := (ContentItem{}).DisplayHeadline(); got != "Untitled" {
		t.Errorf("empty headline: got %q, want Untitled", got)
	}
	if got := (ContentItem{Headline: "GA release"}).DisplayHeadline(); got != "GA release" {
		t.Errorf("set headline: got %q", got)
	}
}

func TestContentItemEmpty(t *testing.T) {
	if !(ContentItem{}).Empty() {
		t.Error("zero item should be empty")
	}
	if (ContentItem{Summary: "s"}).Empty() {
		t.Error("item with summary should not be empty")
	}
}
