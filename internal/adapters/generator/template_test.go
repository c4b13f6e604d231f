package generator

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func clockAt(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
	}
}

func TestGenerateContainsTopicHookAndHashtags(t *testing.T) {
	tmpl := NewTemplateWithClock(rand.New(rand.NewSource(42)), clockAt(10))
	for i := 0; i < 50; i++ {
		text := tmpl.Generate("backend engineering", "expert_tip")
		if !strings.Contains(text, "backend engineering") {
			t.Fatalf("в шаблоне нет темы: %q", text)
		}
		if strings.Count(text, "#") < 3 {
			t.Fatalf("ожидали три хэштега: %q", text)
		}
		hasHook := false
		for _, hook := range engagementHooks {
			if strings.Contains(text, hook) {
				hasHook = true
				break
			}
		}
		if !hasHook {
			t.Fatalf("в шаблоне нет хука вовлечения: %q", text)
		}
	}
}

func TestTimeIntroBuckets(t *testing.T) {
	cases := []struct {
		hour   int
		bucket string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{23, "evening"},
		{4, "evening"},
		{0, "evening"},
	}
	for _, tc := range cases {
		tmpl := NewTemplateWithClock(rand.New(rand.NewSource(1)), clockAt(tc.hour))
		intro := tmpl.timeIntro()
		found := false
		for _, candidate := range timeBasedContent[tc.bucket] {
			if intro == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("час %d: интро %q не из набора %s", tc.hour, intro, tc.bucket)
		}
	}
}

func TestGenerateProducesKnownShapes(t *testing.T) {
	tmpl := NewTemplateWithClock(rand.New(rand.NewSource(3)), clockAt(14))
	seen := map[string]bool{}
	for i := 0; i < 400; i++ {
		text := tmpl.Generate("open source", "challenge")
		switch {
		case strings.Contains(text, "pro tip"):
			seen["pro_tip"] = true
		case strings.Contains(text, "Want to excel in"):
			seen["excel"] = true
		case strings.Contains(text, "What I wish I knew earlier"):
			seen["wisdom"] = true
		case strings.Contains(text, "My top 3 tools"):
			seen["tools"] = true
		case strings.Contains(text, "golden rule"):
			seen["golden"] = true
		case strings.Contains(text, "Boost your"):
			seen["boost"] = true
		case strings.Contains(text, "Always remember"):
			seen["quick"] = true
		case strings.Contains(text, "Build something useful today"):
			seen["challenge"] = true
		default:
			t.Fatalf("текст не похож ни на один из восьми шаблонов: %q", text)
		}
	}
	if len(seen) != 8 {
		t.Fatalf("ожидали все восемь форм шаблонов, увидели %d", len(seen))
	}
}
