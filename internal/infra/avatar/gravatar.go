// Package avatar derives deterministic avatar URLs from email addresses.
package avatar

import (
	"crypto/md5" //nolint:gosec // Gravatar addressing requires MD5; not used for security.
	"encoding/hex"
	"fmt"
	"strings"

	"accounts/config"
	"accounts/internal/domain/service"
)

const (
	defaultBaseURL = "https://www.gravatar.com/avatar"
	defaultSize    = 200
)

// gravatarService builds Gravatar URLs. The derivation is pure: the
// same email always maps to the same URL.
type gravatarService struct {
	baseURL string
	size    int
}

// NewGravatarService is the constructor for gravatarService.
func NewGravatarService(cfg *config.Config) service.AvatarService {
	baseURL := defaultBaseURL
	size := defaultSize

	if cfg != nil {
		if cfg.Avatar.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.Avatar.BaseURL, "/")
		}
		if cfg.Avatar.Size > 0 {
			size = cfg.Avatar.Size
		}
	}

	return &gravatarService{baseURL: baseURL, size: size}
}

// URLFor hashes the normalized email per the Gravatar addressing rules
// (trimmed, lowercased, MD5-hexed) and appends the configured size.
func (s *gravatarService) URLFor(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized)) //nolint:gosec // Addressing scheme, not a security boundary.

	return fmt.Sprintf("%s/%s?s=%d&d=retro", s.baseURL, hex.EncodeToString(sum[:]), s.size)
}
