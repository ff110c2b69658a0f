package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roastedin/models"
)

func TestFetchUpdateLeavesRoastFieldsAlone(t *testing.T) {
	m := &models.Roast{
		UpdatedAt:       time.Now(),
		ProfileURL:      "https://www.linkedin.com/in/jane-doe/",
		ProfileSlug:     "jane-doe",
		ProfileName:     "Jane Doe",
		Headline:        "Staff Engineer",
		FetchDurationMs: 1200,
	}

	set := fetchUpdate(m)

	// 수집 단계 upsert 가 기존 로스트를 빈 값으로 덮어쓰면 안 된다
	assert.NotContains(t, set, "roast_text")
	assert.NotContains(t, set, "model_name")
	assert.NotContains(t, set, "generated_at")
	assert.NotContains(t, set, "llm_latency_ms")
	assert.NotContains(t, set, "status")

	assert.Equal(t, true, set["status.profile_fetched"])
	assert.Equal(t, "jane-doe", set["profile_slug"])
	assert.Equal(t, int64(1200), set["fetch_duration_ms"])
}

func TestRoastUpdateCarriesAllFields(t *testing.T) {
	m := &models.Roast{
		Status:       models.StatusFlags{ProfileFetched: true, Roasted: true},
		ProfileURL:   "https://www.linkedin.com/in/jane-doe/",
		RoastText:    "Another visionary.",
		ModelName:    "gemini-2.0-flash",
		GeneratedAt:  time.Now(),
		LLMLatencyMs: 900,
	}

	set := roastUpdate(m)
	assert.Equal(t, "Another visionary.", set["roast_text"])
	assert.Equal(t, "gemini-2.0-flash", set["model_name"])
	assert.Equal(t, int64(900), set["llm_latency_ms"])
	assert.Equal(t, m.Status, set["status"])
}
