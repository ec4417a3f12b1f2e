package observability

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PromptPolicy controls how much prompt text reaches traces.
type PromptPolicy string

const (
	PromptPolicyRedact PromptPolicy = "redact"
	PromptPolicyHash   PromptPolicy = "hash"
	PromptPolicyFull   PromptPolicy = "full"
)

const previewRunes = 120

// Sanitizer prepares prompt previews for span attributes.
type Sanitizer struct {
	policy PromptPolicy
	salt   string

	emailPattern *regexp.Regexp
	phonePattern *regexp.Regexp
	cardPattern  *regexp.Regexp
	ipv4Pattern  *regexp.Regexp
}

// NewSanitizer returns a sanitizer for policy. Hashes are salted so the
// same address hashes differently across deployments.
func NewSanitizer(policy PromptPolicy, salt string) *Sanitizer {
	return &Sanitizer{
		policy:       policy,
		salt:         salt,
		emailPattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern: regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		cardPattern:  regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		ipv4Pattern:  regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	}
}

// Preview returns at most previewRunes of prompt, sanitized per policy.
// Unknown policies hash.
func (s *Sanitizer) Preview(prompt string) string {
	switch s.policy {
	case PromptPolicyRedact:
		return "[REDACTED]"
	case PromptPolicyFull:
		return truncate(prompt)
	default:
		return truncate(s.hashPII(prompt))
	}
}

func (s *Sanitizer) hashPII(input string) string {
	// Cards before phones: a card number contains phone-shaped runs.
	result := s.cardPattern.ReplaceAllString(input, "[CC:REDACTED]")
	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})
	result = s.ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})
	return result
}

func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "..."
}
