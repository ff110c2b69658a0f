package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"roastedin/config"
	"roastedin/session"
)

// ErrNotProfileURL 은 linkedin.com/in/ 형식이 아닌 입력이다.
var ErrNotProfileURL = errors.New("not a linkedin profile url")

// ErrSessionLost 는 프로필 네비게이션이 로그인/authwall 로 리다이렉트된 상태다.
// 호출부는 세션을 무효화하고 한 번 재시도할 수 있다.
var ErrSessionLost = errors.New("session rejected while fetching profile")

// ErrEmptyProfile 은 렌더링은 됐지만 쓸만한 텍스트가 없는 상태다.
var ErrEmptyProfile = errors.New("profile page produced no usable text")

// minProfileRunes 미만의 텍스트는 프로필로 취급하지 않는다.
const minProfileRunes = 80

// Profile 은 한 번의 스크레이프 결과다.
type Profile struct {
	URL           string
	Slug          string
	Name          string
	Headline      string
	Text          string
	FetchedAt     time.Time
	FetchDuration time.Duration
}

// CanonicalProfileURL 은 입력을 https://www.linkedin.com/in/<slug>/ 로 정규화하고
// slug 를 함께 반환한다. slug 만 들어와도 허용한다.
func CanonicalProfileURL(raw string) (canonical, slug string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", ErrNotProfileURL
	}

	// bare slug 지원: "jane-doe", "john.smith" -> 프로필 URL
	// 슬래시 없는 입력은 URL 일 수 없으므로 slug 로 취급하되,
	// "linkedin.com" 처럼 호스트만 들어온 경우는 거른다.
	if !strings.Contains(raw, "/") {
		lower := strings.ToLower(raw)
		if lower == "linkedin.com" || strings.HasSuffix(lower, ".linkedin.com") {
			return "", "", ErrNotProfileURL
		}
		slug = raw
		return "https://www.linkedin.com/in/" + url.PathEscape(slug) + "/", slug, nil
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", ErrNotProfileURL
	}

	host := strings.ToLower(u.Hostname())
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return "", "", ErrNotProfileURL
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "in" || parts[1] == "" {
		return "", "", ErrNotProfileURL
	}
	slug = parts[1]

	return "https://www.linkedin.com/in/" + slug + "/", slug, nil
}

// FetchProfile 은 인증된 브라우저 컨텍스트로 프로필 페이지를 렌더링하고
// 보이는 텍스트를 추출한다. sessionCtx 는 session.Manager.Acquire 가 반환한
// 컨텍스트여야 하며, 호출 동안 점유 상태여야 한다.
func FetchProfile(sessionCtx context.Context, cfg config.LinkedInConfig, profileURL string) (*Profile, error) {
	canonical, slug, err := CanonicalProfileURL(profileURL)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.ProfileTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	tctx, cancel := context.WithTimeout(sessionCtx, timeout)
	defer cancel()

	start := time.Now()
	var htmlContent, finalURL string
	err = chromedp.Run(tctx,
		chromedp.Navigate(canonical),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second), // lazy-load 콘텐츠 대기
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return nil, fmt.Errorf("프로필 렌더링 실패: %w", err)
	}
	dur := time.Since(start)

	switch {
	case session.IsCheckpointURL(finalURL):
		return nil, session.ErrCheckpoint
	case session.IsLoginURL(finalURL):
		return nil, ErrSessionLost
	}

	text := strings.TrimSpace(ExtractText(htmlContent))
	if len([]rune(text)) < minProfileRunes {
		return nil, ErrEmptyProfile
	}
	text = TruncateRunes(text, cfg.MaxTextRunes)

	name, headline := SplitProfileTitle(PageTitle(htmlContent))

	return &Profile{
		URL:           canonical,
		Slug:          slug,
		Name:          name,
		Headline:      headline,
		Text:          text,
		FetchedAt:     start,
		FetchDuration: dur,
	}, nil
}
