package avatar

import (
	"testing"

	"accounts/config"

	"github.com/stretchr/testify/assert"
)

func TestGravatarService_URLFor(t *testing.T) {
	svc := NewGravatarService(nil)

	// Known vector from the Gravatar addressing documentation: the email
	// is trimmed and lowercased before hashing.
	url := svc.URLFor("MyEmailAddress@example.com ")

	assert.Equal(t, "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=200&d=retro", url)
}

func TestGravatarService_Deterministic(t *testing.T) {
	svc := NewGravatarService(nil)

	assert.Equal(t, svc.URLFor("test@example.com"), svc.URLFor("test@example.com"))
	assert.Equal(t, svc.URLFor("test@example.com"), svc.URLFor("  TEST@EXAMPLE.COM  "))
	assert.NotEqual(t, svc.URLFor("a@example.com"), svc.URLFor("b@example.com"))
}

func TestGravatarService_CustomConfig(t *testing.T) {
	cfg := &config.Config{
		Avatar: config.AvatarConfig{
			BaseURL: "https://avatars.internal.example.com/",
			Size:    96,
		},
	}
	svc := NewGravatarService(cfg)

	url := svc.URLFor("test@example.com")

	assert.Contains(t, url, "https://avatars.internal.example.com/")
	assert.NotContains(t, url, ".com//")
	assert.Contains(t, url, "s=96")
}
