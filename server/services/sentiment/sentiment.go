// Package sentiment classifies free text as Positive/Neutral/Negative with a
// confidence score. Tiers are tried in order: hosted HuggingFace classifier,
// LLM strict-JSON classifier, keyword heuristic. The last tier cannot fail,
// so Analyze is total.
package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	httputils "github.com/teamcbatch1/conceptclarity/server/utils/http"
	"github.com/teamcbatch1/conceptclarity/server/utils/jsonutils"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
)

const (
	huggingFaceURL     = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"
	huggingFaceTimeout = 15 * time.Second

	// huggingFaceThreshold: below it the binary classifier's verdict is too
	// weak and we report Neutral.
	huggingFaceThreshold = 0.6
)

const llmSentimentPrompt = `You are a multilingual sentiment analysis expert. Analyze sentiment in ANY language (English, Spanish, French, German, Hindi, Telugu, Tamil, Chinese, Japanese, Arabic, etc.) and respond with ONLY a JSON object: {"sentiment": "Positive" or "Neutral" or "Negative", "confidence": 0.0-1.0}. No other text or explanation.`

type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// completer is the slice of the LLM gateway the middle tier needs.
type completer interface {
	Complete(ctx context.Context, systemPrompt, prompt string, maxTokens int) (string, error)
}

type Analyzer struct {
	hfAPIKey string
	hfURL    string
	llm      completer
	client   *http.Client
	logger   *zap.Logger
	tiers    []func(ctx context.Context, text string) (Result, error)
}

// NewAnalyzer wires the tier list. llm may be nil (tier skipped); an empty
// hfAPIKey likewise skips the hosted tier. The keyword tier always runs last.
func NewAnalyzer(hfAPIKey string, llm completer) *Analyzer {
	a := &Analyzer{
		hfAPIKey: hfAPIKey,
		hfURL:    huggingFaceURL,
		llm:      llm,
		client:   &http.Client{Timeout: huggingFaceTimeout},
		logger:   logging.AppLogger,
	}
	a.tiers = []func(ctx context.Context, text string) (Result, error){
		a.huggingFaceSentiment,
		a.llmSentiment,
		a.keywordSentiment,
	}
	return a
}

// Analyze walks the tier list and returns the first success. It never
// returns an error: the keyword tier is deterministic and infallible.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	defer logging.LogDuration(ctx, "sentiment_analyze")()

	for _, tier := range a.tiers {
		result, err := tier(ctx, text)
		if err == nil {
			return result
		}
		if a.logger != nil {
			a.logger.Warn("sentiment tier failed, falling through", zap.Error(err))
		}
	}
	// Unreachable: keywordSentiment never errors. Kept as a hard floor.
	return Result{Label: LabelNeutral, Score: 0.7}
}

var errTierUnavailable = errors.New("sentiment tier unavailable")

func (a *Analyzer) huggingFaceSentiment(ctx context.Context, text string) (Result, error) {
	if a.hfAPIKey == "" {
		return Result{}, errTierUnavailable
	}

	// Response shape: [[{"label":"POSITIVE","score":0.95},{"label":"NEGATIVE","score":0.05}]]
	var resp [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	headers := map[string]string{"Authorization": "Bearer " + a.hfAPIKey}
	err := httputils.PostJSON(ctx, a.client, a.hfURL, headers,
		map[string]string{"inputs": text}, &resp)
	if err != nil {
		return Result{}, err
	}
	if len(resp) == 0 || len(resp[0]) == 0 {
		return Result{}, errors.New("empty classifier response")
	}

	top := resp[0][0]
	for _, candidate := range resp[0][1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}

	label := LabelNeutral
	if top.Label == "POSITIVE" && top.Score > huggingFaceThreshold {
		label = LabelPositive
	} else if top.Label == "NEGATIVE" && top.Score > huggingFaceThreshold {
		label = LabelNegative
	}
	return Result{Label: label, Score: top.Score}, nil
}

func (a *Analyzer) llmSentiment(ctx context.Context, text string) (Result, error) {
	if a.llm == nil {
		return Result{}, errTierUnavailable
	}

	content, err := a.llm.Complete(ctx, llmSentimentPrompt,
		"Analyze the sentiment of this feedback (it may be in any language): \""+text+"\"", 50)
	if err != nil {
		return Result{}, err
	}

	var parsed struct {
		Sentiment  string  `json:"sentiment"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(jsonutils.ExtractJSON(content)), &parsed); err != nil {
		return Result{}, err
	}
	switch parsed.Sentiment {
	case LabelPositive, LabelNeutral, LabelNegative:
	default:
		return Result{}, errors.New("unexpected sentiment label: " + parsed.Sentiment)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return Result{}, errors.New("confidence out of range")
	}
	return Result{Label: parsed.Sentiment, Score: parsed.Confidence}, nil
}

// keywordSentiment is the deterministic floor: count keyword hits, majority
// wins with score 0.6 + 0.1 per hit capped at 0.95, tie is Neutral at 0.7.
func (a *Analyzer) keywordSentiment(ctx context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)

	var positiveCount, negativeCount int
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			positiveCount++
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return Result{Label: LabelPositive, Score: cappedScore(positiveCount)}, nil
	case negativeCount > positiveCount:
		return Result{Label: LabelNegative, Score: cappedScore(negativeCount)}, nil
	default:
		return Result{Label: LabelNeutral, Score: 0.7}, nil
	}
}

func cappedScore(count int) float64 {
	score := 0.6 + float64(count)*0.1
	if score > 0.95 {
		return 0.95
	}
	return score
}
