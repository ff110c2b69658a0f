package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig    `yaml:"logging"`
	GeminiModel string           `yaml:"gemini_model"`
	LinkedIn    LinkedInConfig   `yaml:"linkedin"`
	Session     SessionConfig    `yaml:"session"`
	RoastQuota  RoastQuotaConfig `yaml:"roast_quota"`
	RoastCache  RoastCacheConfig `yaml:"roast_cache"`
	Kafka       KafkaConfig      `yaml:"kafka"`

	// 아래 값들은 config.yaml 이 아니라 환경변수에서 로드한다. (.env 지원)
	MongoURI         string `yaml:"-"`
	MongoDBName      string `yaml:"-"`
	GeminiAPIKey     string `yaml:"-"`
	LinkedInEmail    string `yaml:"-"`
	LinkedInPassword string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LinkedInConfig 는 브라우저가 바라보는 LinkedIn 쪽 URL 과 타임아웃을 정의한다.
type LinkedInConfig struct {
	LoginURL string `yaml:"login_url"`
	FeedURL  string `yaml:"feed_url"`

	// LoginTimeoutSeconds 는 자격증명 fallback 로그인 전체에 허용하는 시간이다.
	LoginTimeoutSeconds int `yaml:"login_timeout_seconds"`

	// ProfileTimeoutSeconds 는 프로필 한 건의 렌더링/추출에 허용하는 시간이다.
	ProfileTimeoutSeconds int `yaml:"profile_timeout_seconds"`

	// MaxTextRunes 는 LLM 에 전달하기 전에 프로필 텍스트를 자르는 상한이다.
	// 0 이하면 자르지 않는다.
	MaxTextRunes int `yaml:"max_text_runes"`
}

// SessionConfig 는 저장된 인증 세션(storage state) 관련 설정이다.
type SessionConfig struct {
	// StatePath 는 cmd/savesession 이 기록하고 서버가 읽는 state 파일 경로다.
	StatePath string `yaml:"state_path"`

	// ProbeURL 은 캐시된 컨텍스트 검증용 throwaway 네비게이션 대상이다.
	// 비어 있으면 linkedin.feed_url 을 사용한다.
	ProbeURL string `yaml:"probe_url"`
}

// RoastQuotaConfig 는 로스트용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type RoastQuotaConfig struct {
	// RequestsPerMinute 는 분당 최대 LLM 호출 수이다. 0 이하면 제한 없음.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 일일 최대 LLM 호출 수이다. 0 이하면 제한 없음.
	RequestsPerDay int `yaml:"requests_per_day"`
}

// RoastCacheConfig 는 프로필 URL 단위 로스트 결과 캐시 설정이다.
type RoastCacheConfig struct {
	TTLHours int    `yaml:"ttl_hours"`
	Dir      string `yaml:"dir"`
}

// KafkaConfig 는 로스트 완료 이벤트 발행 스위치다.
// 브로커 주소는 KAFKA_BOOTSTRAP_SERVERS 환경변수로 받는다.
type KafkaConfig struct {
	Enabled bool `yaml:"enabled"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB_NAME")
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.LinkedInEmail = os.Getenv("LINKEDIN_EMAIL")
	c.LinkedInPassword = os.Getenv("LINKEDIN_PASSWORD")

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
