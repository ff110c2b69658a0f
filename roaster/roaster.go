package roaster

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/genai"

	"roastedin/config"
)

type RoastResult struct {
	Roast     string `json:"roast"`
	IsFailure bool   `json:"is_failure"`
}

type LLMRequestLog struct {
	Prompt       string     `json:"prompt"`
	Response     string     `json:"response"`
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

const SYSTEM_INSTRUCTION = `
You are a sharp-tongued career comedian. You will receive the visible text of a
LinkedIn profile. Write a short, funny roast of the profile.

The response MUST be a valid JSON object with two keys:
1. roast: The roast itself, 3-6 sentences, witty but not cruel. Mock the
   buzzwords, the humble-brags, the "thought leadership", the emoji bullet
   lists. Never mock protected characteristics, appearance, or tragedy. Always
   end with one backhanded compliment.
2. is_failure: A boolean. Set to true if the text is not actually a person's
   profile (e.g. a login wall, a security check like "I'm not a robot", an
   error page, or fewer than a few lines of real content). Otherwise false.

You MUST NOT wrap the JSON output in a markdown code block (e.g. ` + "```json ... ```" + `).
The response should contain ONLY the raw JSON string.
If roasting is impossible, set is_failure to true and provide an empty string for roast.
`

// ParseRoastResponse 는 모델 응답을 RoastResult 로 파싱한다.
// 계약 위반(마크다운 래핑, 비 JSON)은 에러로 취급한다.
func ParseRoastResponse(raw string) (*RoastResult, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		return nil, fmt.Errorf("model wrapped response in a code block")
	}

	var result RoastResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, fmt.Errorf("roast response is not valid JSON: %w", err)
	}
	return &result, nil
}

// RoastText 는 프로필 텍스트를 Gemini 에 보내 로스트를 생성한다.
// 일시적 API 오류는 짧게 재시도한다. is_failure=true 응답은 에러로 승격해
// 호출부가 결과를 캐시/저장하지 않도록 한다.
func RoastText(ctx context.Context, text string) (*RoastResult, *LLMRequestLog, error) {
	startTime := time.Now()

	cfg := config.GetConfig()
	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	modelName := cfg.GeminiModel

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, nil, err
	}

	result, err := retry.DoWithData(
		func() (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(
				ctx,
				modelName,
				genai.Text(text),
				&genai.GenerateContentConfig{
					SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
				},
			)
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(500*time.Millisecond),
		retry.MaxJitter(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, nil, err
	}

	roast, err := ParseRoastResponse(result.Text())
	if err != nil {
		return nil, nil, err
	}

	llmLog := &LLMRequestLog{
		Prompt:       fmt.Sprintf("%s\n\n%s", SYSTEM_INSTRUCTION, text),
		Response:     result.Text(),
		LatencyMs:    time.Since(startTime).Milliseconds(),
		ModelName:    modelName,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now(),
	}
	if result.UsageMetadata != nil {
		llmLog.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}

	if roast.IsFailure {
		return roast, llmLog, fmt.Errorf("ai judged that this content is not a roastable profile")
	}

	return roast, llmLog, nil
}
