package models

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Client is one entry of an inbound's settings.clients list. The panel
// stores different field sets per protocol, so every field except the
// label is optional; pointer fields distinguish "absent" from a zero
// value the panel expects to see (level 0, alterId 0, empty flow).
type Client struct {
	ID         string  `json:"id,omitempty"`
	Password   string  `json:"password,omitempty"`
	Email      string  `json:"email,omitempty"`
	Flow       *string `json:"flow,omitempty"`
	AlterID    *int    `json:"alterId,omitempty"`
	Level      *int    `json:"level,omitempty"`
	Enable     *bool   `json:"enable,omitempty"`
	LimitIP    *int    `json:"limitIp,omitempty"`
	TotalGB    *int64  `json:"totalGB,omitempty"`
	ExpiryTime *int64  `json:"expiryTime,omitempty"`
	TgID       string  `json:"tgId,omitempty"`
	SubID      string  `json:"subId,omitempty"`
}

// Secret returns the protocol-appropriate primary secret of the client.
func (c *Client) Secret(protocol Protocol) string {
	switch protocol {
	case Trojan:
		return c.Password
	case VMess:
		return c.ID
	default:
		if c.Password != "" {
			return c.Password
		}
		return c.ID
	}
}

// GenerateSubID generates a random subscription ID
func GenerateSubID() string {
	raw := make([]byte, 16)
	_, err := rand.Read(raw)
	if err != nil {
		return "sub_" + hex.EncodeToString([]byte("fallback"))
	}

	b64 := base64.StdEncoding.EncodeToString(raw)
	b64 = strings.ReplaceAll(b64, "=", "")
	b64 = strings.ReplaceAll(b64, "+", "")
	b64 = strings.ReplaceAll(b64, "/", "")

	if len(b64) > 16 {
		b64 = b64[:16]
	}

	return b64
}
