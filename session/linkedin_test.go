package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/session"
)

func TestIsCheckpointURL(t *testing.T) {
	assert.True(t, session.IsCheckpointURL("https://www.linkedin.com/checkpoint/challenge/verify"))
	assert.True(t, session.IsCheckpointURL("https://www.linkedin.com/checkpoint/lg/login-submit"))
	assert.True(t, session.IsCheckpointURL("https://www.linkedin.com/CHECKPOINT/rm"))
	assert.False(t, session.IsCheckpointURL("https://www.linkedin.com/feed/"))
	assert.False(t, session.IsCheckpointURL("https://www.linkedin.com/in/jane-doe/"))
}

func TestIsLoginURL(t *testing.T) {
	assert.True(t, session.IsLoginURL("https://www.linkedin.com/login"))
	assert.True(t, session.IsLoginURL("https://www.linkedin.com/uas/login?session_redirect=%2Ffeed"))
	assert.True(t, session.IsLoginURL("https://www.linkedin.com/authwall?trk=public_profile"))
	assert.False(t, session.IsLoginURL("https://www.linkedin.com/feed/"))
}

func TestIsAuthenticatedURL(t *testing.T) {
	assert.True(t, session.IsAuthenticatedURL("https://www.linkedin.com/feed/"))
	assert.True(t, session.IsAuthenticatedURL("https://www.linkedin.com/in/jane-doe/"))
	assert.True(t, session.IsAuthenticatedURL("https://www.linkedin.com/mynetwork/grow/"))

	// checkpoint/login 판별이 우선한다
	assert.False(t, session.IsAuthenticatedURL("https://www.linkedin.com/checkpoint/challenge/?redirect=/feed/"))
	assert.False(t, session.IsAuthenticatedURL("https://www.linkedin.com/authwall?redirect=linkedin.com/in/jane-doe"))
	assert.False(t, session.IsAuthenticatedURL("https://www.linkedin.com/"))
	assert.False(t, session.IsAuthenticatedURL("https://www.google.com/"))
}
