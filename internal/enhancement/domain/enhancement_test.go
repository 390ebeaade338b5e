package domain

import "testing"

func TestContentHashSensitivity(t *testing.T) {
	content := "Apple reports record Q3 earnings driven by iPhone sales"

	base := ContentHash(content, "concise", "en")
	if base != ContentHash(content, "concise", "en") {
		t.Error("hash is not deterministic")
	}
	if base == ContentHash(content, "detailed", "en") {
		t.Error("differing style must change the hash")
	}
	if base == ContentHash(content, "concise", "vi") {
		t.Error("differing language must change the hash")
	}
	if base == ContentHash(content+"!", "concise", "en") {
		t.Error("differing content must change the hash")
	}
}

func TestContentHashParamBoundaries(t *testing.T) {
	// The separator prevents ("ab","c") and ("a","bc") from colliding.
	if ContentHash("ab", "c") == ContentHash("a", "bc") {
		t.Error("variant parameter boundaries collapsed")
	}
	if ContentHash("x", "a", "b") == ContentHash("x", "ab") {
		t.Error("parameter split must change the hash")
	}
}

func TestArticleIDCanonicalization(t *testing.T) {
	id := ArticleID("https://news.example.com/story")
	if id != ArticleID("  https://news.example.com/story/ ") {
		t.Error("trailing slash and whitespace should not change the id")
	}
	if id == ArticleID("https://news.example.com/other") {
		t.Error("different URLs must map to different ids")
	}
	if len(id) != 64 {
		t.Errorf("id length = %d, want 64 hex chars", len(id))
	}
}

func TestValidTaskKind(t *testing.T) {
	for _, kind := range []TaskKind{TaskSummary, TaskSentiment, TaskKeyPoints,
		TaskComplexityMeter, TaskGeoExtraction, TaskTags, TaskQuestionAnswer,
		TaskNewsInsights, TaskSocialCaption} {
		if !ValidTaskKind(kind) {
			t.Errorf("ValidTaskKind(%q) = false", kind)
		}
	}
	if ValidTaskKind("translation") {
		t.Error(`ValidTaskKind("translation") = true`)
	}
}
