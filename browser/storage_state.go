package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// Cookie 는 storage state 파일에 직렬화되는 쿠키 한 건이다.
// CDP 의 network.Cookie 중 세션 복원에 필요한 필드만 보존한다.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"http_only"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"same_site,omitempty"`
}

// OriginState 는 origin 하나의 localStorage 스냅샷이다.
type OriginState struct {
	Origin       string            `json:"origin"`
	LocalStorage map[string]string `json:"local_storage"`
}

// StorageState 는 대화형 로그인 없이 인증 세션을 복원하기 위한
// 쿠키 + localStorage 스냅샷이다. cmd/savesession 이 기록하고
// session.Manager 가 읽는다.
type StorageState struct {
	SavedAt time.Time     `json:"saved_at"`
	Cookies []Cookie      `json:"cookies"`
	Origins []OriginState `json:"origins,omitempty"`
}

// HasCookie 는 주어진 이름의 쿠키가 스냅샷에 존재하는지 여부를 반환한다.
func (s *StorageState) HasCookie(name string) bool {
	for _, c := range s.Cookies {
		if c.Name == name {
			return true
		}
	}
	return false
}

// LoadState 는 state 파일을 읽어 파싱한다. 파일이 없거나 쿠키가 비어 있으면 에러를 반환한다.
func LoadState(path string) (*StorageState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s StorageState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("storage state 파싱 실패: %w", err)
	}
	if len(s.Cookies) == 0 {
		return nil, fmt.Errorf("storage state 에 쿠키가 없음: %s", path)
	}
	return &s, nil
}

// SaveState 는 state 를 JSON 으로 기록한다. 세션 쿠키가 담기므로 0600 권한을 사용한다.
func SaveState(path string, s *StorageState) error {
	s.SavedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SeedTasks 는 새로 띄운 브라우저 컨텍스트에 storage state 를 주입하는 Tasks 를 반환한다.
// 쿠키는 네비게이션 전에 CDP 로 설치하고, localStorage 는 origin 별로
// 해당 origin 에 들어간 뒤 스크립트로 채운다.
func SeedTasks(s *StorageState) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range s.Cookies {
				p := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithHTTPOnly(c.HTTPOnly).
					WithSecure(c.Secure)
				if c.Expires > 0 {
					expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
					p = p.WithExpires(&expires)
				}
				if c.SameSite != "" {
					p = p.WithSameSite(network.CookieSameSite(c.SameSite))
				}
				if err := p.Do(ctx); err != nil {
					return fmt.Errorf("쿠키 주입 실패 (%s): %w", c.Name, err)
				}
			}
			return nil
		}),
	}

	for _, origin := range s.Origins {
		if len(origin.LocalStorage) == 0 {
			continue
		}
		kv, err := json.Marshal(origin.LocalStorage)
		if err != nil {
			continue
		}
		script := fmt.Sprintf(`(() => {
			const kv = %s;
			for (const k in kv) { localStorage.setItem(k, kv[k]); }
			return true;
		})()`, string(kv))
		tasks = append(tasks,
			chromedp.Navigate(origin.Origin),
			chromedp.Evaluate(script, nil),
		)
	}

	return tasks
}

// CaptureTasks 는 현재 컨텍스트의 쿠키 전체와 주어진 origin 들의 localStorage 를
// state 로 읽어오는 Tasks 를 반환한다. 호출 시점에 이미 인증된 컨텍스트여야 의미가 있다.
func CaptureTasks(s *StorageState, origins ...string) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.ActionFunc(func(ctx context.Context) error {
			cookies, err := storage.GetCookies().Do(ctx)
			if err != nil {
				return fmt.Errorf("쿠키 수집 실패: %w", err)
			}
			s.Cookies = s.Cookies[:0]
			for _, c := range cookies {
				s.Cookies = append(s.Cookies, Cookie{
					Name:     c.Name,
					Value:    c.Value,
					Domain:   c.Domain,
					Path:     c.Path,
					Expires:  c.Expires,
					HTTPOnly: c.HTTPOnly,
					Secure:   c.Secure,
					SameSite: c.SameSite.String(),
				})
			}
			return nil
		}),
	}

	const dumpScript = `(() => {
		const out = {};
		for (let i = 0; i < localStorage.length; i++) {
			const k = localStorage.key(i);
			out[k] = localStorage.getItem(k);
		}
		return out;
	})()`

	for _, origin := range origins {
		origin := origin
		var dump map[string]string
		tasks = append(tasks,
			chromedp.Navigate(origin),
			chromedp.Evaluate(dumpScript, &dump),
			chromedp.ActionFunc(func(ctx context.Context) error {
				if len(dump) == 0 {
					return nil
				}
				s.Origins = append(s.Origins, OriginState{Origin: origin, LocalStorage: dump})
				return nil
			}),
		)
	}

	return tasks
}
