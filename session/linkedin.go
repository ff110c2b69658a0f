package session

import "strings"

// AuthCookieName 은 LinkedIn 인증 세션의 핵심 쿠키 이름이다.
// storage state 에 이 쿠키가 없으면 복원을 시도할 가치가 없다.
const AuthCookieName = "li_at"

// authenticatedPaths 는 로그인된 상태에서만 도달 가능한 URL 경로 목록이다.
var authenticatedPaths = []string{
	"linkedin.com/feed",
	"linkedin.com/in/",
	"linkedin.com/mynetwork",
	"linkedin.com/jobs",
	"linkedin.com/search",
}

// IsCheckpointURL 은 로그인 후 본인확인(checkpoint/challenge) 인터스티셜로
// 이동했는지 판별한다. 이 페이지는 headless 로는 통과할 수 없다.
func IsCheckpointURL(u string) bool {
	lu := strings.ToLower(u)
	return strings.Contains(lu, "/checkpoint") || strings.Contains(lu, "/challenge")
}

// IsLoginURL 은 로그인 폼 또는 비로그인 차단(authwall) 페이지인지 판별한다.
func IsLoginURL(u string) bool {
	lu := strings.ToLower(u)
	return strings.Contains(lu, "linkedin.com/login") ||
		strings.Contains(lu, "linkedin.com/uas/login") ||
		strings.Contains(lu, "linkedin.com/authwall")
}

// IsAuthenticatedURL 은 인증된 세션에서만 보이는 페이지에 도달했는지 판별한다.
// checkpoint/login 판별이 우선한다.
func IsAuthenticatedURL(u string) bool {
	if IsCheckpointURL(u) || IsLoginURL(u) {
		return false
	}
	lu := strings.ToLower(u)
	for _, p := range authenticatedPaths {
		if strings.Contains(lu, p) {
			return true
		}
	}
	return false
}
