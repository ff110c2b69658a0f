package roaster_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/config"
	"roastedin/roaster"
)

func TestParseRoastResponse(t *testing.T) {
	result, err := roaster.ParseRoastResponse(`{"roast": "Another visionary disrupting synergy.", "is_failure": false}`)
	assert.NoError(t, err)
	assert.Equal(t, "Another visionary disrupting synergy.", result.Roast)
	assert.False(t, result.IsFailure)
}

func TestParseRoastResponseFailureFlag(t *testing.T) {
	result, err := roaster.ParseRoastResponse(`{"roast": "", "is_failure": true}`)
	assert.NoError(t, err)
	assert.True(t, result.IsFailure)
	assert.Empty(t, result.Roast)
}

func TestParseRoastResponseRejectsCodeBlock(t *testing.T) {
	_, err := roaster.ParseRoastResponse("```json\n{\"roast\": \"x\", \"is_failure\": false}\n```")
	assert.Error(t, err)
}

func TestParseRoastResponseRejectsNonJSON(t *testing.T) {
	_, err := roaster.ParseRoastResponse("Sure! Here is your roast: ...")
	assert.Error(t, err)
}

func TestParseRoastResponseTrimsWhitespace(t *testing.T) {
	result, err := roaster.ParseRoastResponse("\n  {\"roast\": \"ok\", \"is_failure\": false}  \n")
	assert.NoError(t, err)
	assert.Equal(t, "ok", result.Roast)
}

// 실제 Gemini 호출 테스트. API 키가 없으면 스킵한다.
func TestRoastText(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		t.Skip("GEMINI_API_KEY not set")
	}
	config.InitApp()

	text := `Jane Doe
Staff Engineer at Acme | Keynote Speaker | 10x Thought Leader
About: I don't just write code, I craft digital experiences. Passionate about
synergy, servant leadership, and disrupting the status quo. My DMs are open.
Experience: Acme Corp - Staff Engineer (2020-present). Led a team of 12 rockstars.
Increased velocity 300% by introducing daily standups twice a day.
Skills: Blockchain, AI, Growth Hacking, Microservices, Public Speaking.`

	result, llmLog, err := roaster.RoastText(context.Background(), text)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Roast)
	assert.False(t, result.IsFailure)
	assert.NotNil(t, llmLog)
	assert.NotEmpty(t, llmLog.ModelName)

	t.Log(result.Roast)
	t.Log(llmLog.TokenUsage)
}
