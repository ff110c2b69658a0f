package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/cache"
)

func TestURLToKey(t *testing.T) {
	a := cache.URLToKey("https://www.linkedin.com/in/jane-doe/")
	b := cache.URLToKey("https://www.linkedin.com/in/jane-doe/")
	c := cache.URLToKey("https://www.linkedin.com/in/john-doe/")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // sha256 hex
}

func TestNullCacheReturnsFetchResult(t *testing.T) {
	c := cache.NewNull()

	data, err := c.GetSet(context.Background(), "k", func(context.Context) ([]byte, error) {
		return []byte("roast"), nil
	}, c.TTL())
	assert.NoError(t, err)
	assert.Equal(t, []byte("roast"), data)

	data, err = c.GetSet(context.Background(), "k2", func(context.Context) ([]byte, error) {
		return []byte("other"), nil
	}, c.TTL())
	assert.NoError(t, err)
	assert.Equal(t, []byte("other"), data)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c := cache.NewNull()

	boom := errors.New("generation failed")
	_, err := c.GetSet(context.Background(), "k", func(context.Context) ([]byte, error) {
		return nil, boom
	}, c.TTL())
	assert.ErrorIs(t, err, boom)

	// 다음 호출은 다시 fetch 를 시도해야 한다
	data, err := c.GetSet(context.Background(), "k", func(context.Context) ([]byte, error) {
		return []byte("ok"), nil
	}, c.TTL())
	assert.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
}
