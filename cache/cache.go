// Package cache 는 프로필 URL 단위 로스트 결과 캐시를 제공한다.
// 캐시 히트는 브라우저 세션과 LLM 호출을 모두 건너뛴다.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"

	"roastedin/config"
)

const cacheName = "roastedin"

// RoastCache 는 sfcache TieredCache 를 감싼 디스크 영속 캐시다.
// GetSet 의 single-flight 동작 덕에 같은 프로필에 대한 동시 요청은
// 스크레이프를 한 번만 수행한다.
type RoastCache struct {
	*sfcache.TieredCache[string, []byte]

	ttl time.Duration
}

// New 는 config 기반으로 디스크 영속 캐시를 생성한다.
func New(cfg config.RoastCacheConfig) (*RoastCache, error) {
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(config.GetBasePath(), ".roast-cache")
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(config.GetBasePath(), dir)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("캐시 디렉터리 생성 실패: %w", err)
	}

	persist, err := localfs.New[string, []byte](cacheName, dir)
	if err != nil {
		return nil, fmt.Errorf("캐시 영속 계층 생성 실패: %w", err)
	}

	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("캐시 생성 실패: %w", err)
	}

	return &RoastCache{TieredCache: tc, ttl: ttl}, nil
}

// NewNull 은 영속 없는 캐시를 생성한다. (모든 Get 미스, 모든 Set 폐기)
// 테스트와 캐시 비활성 구성에서 사용한다.
func NewNull() *RoastCache {
	tc, err := sfcache.NewTiered[string, []byte](null.New[string, []byte]())
	if err != nil {
		panic("sfcache.NewTiered with null store: " + err.Error())
	}
	return &RoastCache{TieredCache: tc, ttl: 0}
}

// TTL 은 캐시 엔트리 기본 수명을 반환한다.
func (c *RoastCache) TTL() time.Duration {
	return c.ttl
}

// URLToKey 는 정규화된 프로필 URL 을 파일시스템 안전한 캐시 키로 변환한다.
func URLToKey(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(hash[:])
}
