package leadai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/somGabriel/Proago/pkg/ai/llm"
	"github.com/somGabriel/Proago/pkg/errx"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/logx"
)

const systemPrompt = `You are a professional HR recruiter for ProAgo Marketing, a field marketing and door-to-door sales agency. You evaluate candidate CVs for suitability.`

const analysisPrompt = `Analyze the attached CV for the position of "%ROLE%".
Rate the candidate's suitability from 0 to 100, considering sales experience,
customer-facing work, language skills and overall presentation.
Return a JSON object with two fields: "score" (number) and "summary"
(two or three sentences, recruiter-facing).`

// unavailableSummary is returned whenever analysis cannot be completed.
const unavailableSummary = "AI analysis was unavailable for this document."

var analysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"score": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 100,
		},
		"summary": map[string]any{
			"type": "string",
		},
	},
	"required":             []string{"score", "summary"},
	"additionalProperties": false,
}

// Scorer evaluates CV documents with a vision-capable chat model.
type Scorer struct {
	llm   llm.LLM
	model string
}

// NewScorer creates a CV scorer on top of an LLM provider.
func NewScorer(provider llm.LLM, model string) *Scorer {
	if model == "" {
		model = "gpt-4o"
	}
	return &Scorer{
		llm:   provider,
		model: model,
	}
}

// Score sends the document and the target role to the model and parses the
// structured verdict.
func (s *Scorer) Score(ctx context.Context, cvBase64, fileName, role string) (lead.CVAnalysis, error) {
	prompt := strings.ReplaceAll(analysisPrompt, "%ROLE%", role)

	messages := []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserImageMessage(prompt, documentURL(cvBase64, fileName)),
	}

	resp, err := s.llm.Chat(ctx, messages,
		llm.WithModel(s.model),
		llm.WithTemperature(0.2),
		llm.WithJSONSchemaResponseFormat(analysisSchema),
	)
	if err != nil {
		return lead.CVAnalysis{}, errx.Wrap(err, "cv analysis request failed", errx.TypeExternal)
	}

	var analysis lead.CVAnalysis
	if err := json.Unmarshal([]byte(resp.Message.Content), &analysis); err != nil {
		return lead.CVAnalysis{}, errx.Wrap(err, "cv analysis returned malformed verdict", errx.TypeExternal)
	}

	if analysis.Score < 0 {
		analysis.Score = 0
	}
	if analysis.Score > 100 {
		analysis.Score = 100
	}
	return analysis, nil
}

// documentURL wraps raw base64 content as a data URL. Content that already
// is a data URL passes through unchanged.
func documentURL(cvBase64, fileName string) string {
	if strings.HasPrefix(cvBase64, "data:") {
		return cvBase64
	}
	return "data:" + mimeTypeFor(fileName) + ";base64," + cvBase64
}

func mimeTypeFor(fileName string) string {
	switch strings.ToLower(fileName[strings.LastIndex(fileName, ".")+1:]) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "application/pdf"
	}
}

// SafeScorer absorbs every scorer failure into the neutral verdict so a
// broken or slow model never blocks a submission.
type SafeScorer struct {
	inner lead.CVScorer
}

// NewSafeScorer wraps a scorer with the neutral-verdict fallback.
func NewSafeScorer(inner lead.CVScorer) *SafeScorer {
	return &SafeScorer{inner: inner}
}

// Score never returns an error.
func (s *SafeScorer) Score(ctx context.Context, cvBase64, fileName, role string) (lead.CVAnalysis, error) {
	analysis, err := s.inner.Score(ctx, cvBase64, fileName, role)
	if err != nil {
		logx.WithFields(logx.Fields{"error": err.Error()}).Warnf("cv scorer failed, using neutral verdict")
		return lead.CVAnalysis{Score: 0, Summary: unavailableSummary}, nil
	}
	return analysis, nil
}
