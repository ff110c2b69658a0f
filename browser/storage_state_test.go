package browser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/browser"
)

func TestSaveAndLoadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state := &browser.StorageState{
		Cookies: []browser.Cookie{
			{Name: "li_at", Value: "secret", Domain: ".linkedin.com", Path: "/", Expires: 4102444800, HTTPOnly: true, Secure: true, SameSite: "None"},
			{Name: "lang", Value: "v=2&lang=en-us", Domain: ".linkedin.com", Path: "/"},
		},
		Origins: []browser.OriginState{
			{Origin: "https://www.linkedin.com", LocalStorage: map[string]string{"theme": "dark"}},
		},
	}

	err := browser.SaveState(path, state)
	assert.NoError(t, err)
	assert.False(t, state.SavedAt.IsZero())

	// 세션 쿠키가 담기므로 소유자만 읽을 수 있어야 한다
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := browser.LoadState(path)
	assert.NoError(t, err)
	assert.Len(t, loaded.Cookies, 2)
	assert.True(t, loaded.HasCookie("li_at"))
	assert.False(t, loaded.HasCookie("JSESSIONID"))
	assert.Equal(t, "dark", loaded.Origins[0].LocalStorage["theme"])
}

func TestLoadStateMissingFile(t *testing.T) {
	_, err := browser.LoadState(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadStateRejectsEmptyCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	err := os.WriteFile(path, []byte(`{"saved_at":"2026-01-01T00:00:00Z","cookies":[]}`), 0o600)
	assert.NoError(t, err)

	_, err = browser.LoadState(path)
	assert.Error(t, err)
}
