package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	m.Run()
}

type stubCompleter struct {
	content string
	err     error
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error) {
	return s.content, s.err
}

func TestAnalyzeKeywordTier(t *testing.T) {
	// No HF key, no LLM: only the keyword tier runs.
	a := NewAnalyzer("", nil)

	cases := []struct {
		text  string
		label string
		score float64
	}{
		{"this is excellent and amazing", LabelPositive, 0.8},
		{"terrible, just awful", LabelNegative, 0.8},
		{"the sky is a color", LabelNeutral, 0.7},
		{"good", LabelPositive, 0.7},
		{"bad", LabelNegative, 0.7},
	}
	for _, tc := range cases {
		got := a.Analyze(context.Background(), tc.text)
		if got.Label != tc.label {
			t.Errorf("Analyze(%q).Label = %q, want %q", tc.text, got.Label, tc.label)
		}
		if got.Score != tc.score {
			t.Errorf("Analyze(%q).Score = %v, want %v", tc.text, got.Score, tc.score)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewAnalyzer("", nil)
	first := a.Analyze(context.Background(), "great explanation, very helpful")
	for i := 0; i < 5; i++ {
		if got := a.Analyze(context.Background(), "great explanation, very helpful"); got != first {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
}

func TestCappedScore(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{1, 0.7},
		{2, 0.8},
		{3, 0.9},
		{4, 0.95},
		{10, 0.95},
	}
	for _, tc := range cases {
		if got := cappedScore(tc.count); got != tc.want {
			t.Errorf("cappedScore(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestAnalyzeScoreAndLabelDomain(t *testing.T) {
	a := NewAnalyzer("", nil)
	for _, text := range []string{"", "great", "horrible", "meh", "love it but hate the ads"} {
		got := a.Analyze(context.Background(), text)
		switch got.Label {
		case LabelPositive, LabelNeutral, LabelNegative:
		default:
			t.Errorf("Analyze(%q).Label = %q outside domain", text, got.Label)
		}
		if got.Score < 0 || got.Score > 1 {
			t.Errorf("Analyze(%q).Score = %v outside [0,1]", text, got.Score)
		}
	}
}

func TestLLMTierParsesStrictJSON(t *testing.T) {
	a := NewAnalyzer("", &stubCompleter{content: `{"sentiment": "Negative", "confidence": 0.91}`})
	got := a.Analyze(context.Background(), "this is excellent")
	if got.Label != LabelNegative || got.Score != 0.91 {
		t.Errorf("Analyze = %v, want LLM verdict Negative/0.91", got)
	}
}

func TestLLMTierFencedJSON(t *testing.T) {
	a := NewAnalyzer("", &stubCompleter{
		content: "```json\n{\"sentiment\": \"Positive\", \"confidence\": 0.8}\n```",
	})
	got := a.Analyze(context.Background(), "whatever")
	if got.Label != LabelPositive || got.Score != 0.8 {
		t.Errorf("Analyze = %v, want Positive/0.8 from fenced JSON", got)
	}
}

func TestLLMTierFailureFallsThroughToKeywords(t *testing.T) {
	cases := []*stubCompleter{
		{err: errors.New("model unavailable")},
		{content: "not json at all"},
		{content: `{"sentiment": "Ecstatic", "confidence": 0.9}`},
		{content: `{"sentiment": "Positive", "confidence": 1.5}`},
	}
	for _, llm := range cases {
		a := NewAnalyzer("", llm)
		got := a.Analyze(context.Background(), "terrible and awful")
		if got.Label != LabelNegative {
			t.Errorf("completer %+v: Analyze.Label = %q, want keyword-tier Negative", llm, got.Label)
		}
	}
}
