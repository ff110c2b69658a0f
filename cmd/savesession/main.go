// savesession 은 눈에 보이는 브라우저를 띄워 사람이 LinkedIn 에 로그인하게
// 한 뒤, 그 세션의 storage state 를 파일로 저장한다. 2FA 나 보안 퍼즐도
// 사람이 직접 풀면 되므로 checkpoint 에 막히지 않는다.
//
// 사용법:
//
//	go run ./cmd/savesession [-state path] [-timeout 5m] [-autofill]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"roastedin/browser"
	"roastedin/config"
	"roastedin/logger"
	"roastedin/session"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	statePath := flag.String("state", cfg.Session.StatePath, "path to write the storage state file")
	timeout := flag.Duration("timeout", 5*time.Minute, "how long to wait for a completed login")
	autofill := flag.Bool("autofill", false, "pre-fill the login form from LINKEDIN_EMAIL/LINKEDIN_PASSWORD")
	flag.Parse()

	// headless 끔: 사람이 로그인 과정을 직접 본다.
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(), browser.AllocatorOptions(false)...)
	defer allocCancel()

	bctx, bcancel := chromedp.NewContext(allocCtx)
	defer bcancel()

	if err := chromedp.Run(bctx, chromedp.Navigate(cfg.LinkedIn.LoginURL)); err != nil {
		log.Fatalf("failed to open login page: %v", err)
	}

	if *autofill && cfg.LinkedInEmail != "" && cfg.LinkedInPassword != "" {
		err := chromedp.Run(bctx,
			chromedp.WaitVisible(`#username`, chromedp.ByID),
			chromedp.SendKeys(`#username`, cfg.LinkedInEmail, chromedp.ByID),
			chromedp.SendKeys(`#password`, cfg.LinkedInPassword, chromedp.ByID),
		)
		if err != nil {
			logger.Log.Warnf("autofill failed, continue manually: %v", err)
		}
	}

	logger.Log.Info("log in to LinkedIn in the opened browser window (2FA included)")

	deadline := time.Now().Add(*timeout)
	for {
		var cur string
		if err := chromedp.Run(bctx, chromedp.Location(&cur)); err != nil {
			log.Fatalf("failed to read current url: %v", err)
		}

		if session.IsAuthenticatedURL(cur) {
			logger.Log.Infof("authenticated page detected: %s", cur)
			break
		}

		if time.Now().After(deadline) {
			log.Fatalf("login was not completed within %s (last url: %s)", *timeout, cur)
		}
		time.Sleep(time.Second)
	}

	var state browser.StorageState
	if err := chromedp.Run(bctx, browser.CaptureTasks(&state, "https://www.linkedin.com")); err != nil {
		log.Fatalf("failed to capture storage state: %v", err)
	}
	if !state.HasCookie(session.AuthCookieName) {
		log.Fatalf("captured state has no %s cookie; login did not complete", session.AuthCookieName)
	}

	if err := browser.SaveState(*statePath, &state); err != nil {
		log.Fatalf("failed to write storage state: %v", err)
	}
	logger.Log.Infof("storage state saved to %s (%d cookies, %d origins)",
		*statePath, len(state.Cookies), len(state.Origins))
}
