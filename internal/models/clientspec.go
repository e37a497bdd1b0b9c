package models

import (
	"fmt"

	"github.com/google/uuid"

	xuierrors "xui-manager/internal/errors"
)

// ClientSpec is the protocol-tagged description of a client to be
// created. Each variant carries exactly the fields its protocol stores,
// and Build lowers it to the wire-level Client record with the common
// bookkeeping defaults filled in.
type ClientSpec interface {
	Protocol() Protocol
	Build() Client
}

// VlessSpec describes a vless client: the UUID is the login identity,
// the password is a secondary secret some panel forks store alongside it.
type VlessSpec struct {
	ID       string
	Email    string
	Flow     string
	Level    int
	Password string
}

// VmessSpec describes a vmess client: the UUID doubles as the secret.
type VmessSpec struct {
	ID      string
	Email   string
	AlterID int
	Level   int
}

// TrojanSpec describes a trojan client: the password is the only secret.
type TrojanSpec struct {
	Password string
	Email    string
	Level    int
}

func (s VlessSpec) Protocol() Protocol  { return VLESS }
func (s VmessSpec) Protocol() Protocol  { return VMess }
func (s TrojanSpec) Protocol() Protocol { return Trojan }

func (s VlessSpec) Build() Client {
	c := newClientDefaults(s.Email)
	c.ID = s.ID
	c.Password = s.Password
	c.Flow = stringPtr(s.Flow)
	c.Level = intPtr(s.Level)
	return c
}

func (s VmessSpec) Build() Client {
	c := newClientDefaults(s.Email)
	c.ID = s.ID
	c.AlterID = intPtr(s.AlterID)
	c.Level = intPtr(s.Level)
	return c
}

func (s TrojanSpec) Build() Client {
	c := newClientDefaults(s.Email)
	c.Password = s.Password
	c.Level = intPtr(s.Level)
	return c
}

// NewClientSpec maps (protocol, identifier, secret) to the matching
// variant. An identifier in UUID form becomes the client UUID and the
// email label is derived from it; otherwise the identifier is the email
// and a fresh UUID is generated. A missing secret is generated.
func NewClientSpec(protocol Protocol, identifier, secret string) (ClientSpec, error) {
	id := uuid.New().String()
	email := identifier
	identifierIsUUID := false
	if parsed, err := uuid.Parse(identifier); err == nil {
		id = parsed.String()
		email = fmt.Sprintf("client-%s@xui.local", id[:8])
		identifierIsUUID = true
	}

	if secret == "" {
		secret = uuid.New().String()
	}

	switch protocol {
	case VLESS:
		return VlessSpec{ID: id, Email: email, Flow: "", Level: 0, Password: secret}, nil
	case VMess:
		// For vmess the UUID is the secret, so a UUID-form identifier
		// wins over a supplied secret.
		vmessID := secret
		if identifierIsUUID {
			vmessID = id
		}
		return VmessSpec{ID: vmessID, Email: email, AlterID: 0, Level: 0}, nil
	case Trojan:
		return TrojanSpec{Password: secret, Email: email, Level: 0}, nil
	default:
		return nil, &xuierrors.UnsupportedProtocolError{Protocol: protocol.String()}
	}
}

// newClientDefaults fills the bookkeeping fields every new client gets:
// enabled, unlimited traffic and IPs, no expiry, a random subscription id.
func newClientDefaults(email string) Client {
	return Client{
		Email:      email,
		Enable:     boolPtr(true),
		LimitIP:    intPtr(0),
		TotalGB:    int64Ptr(0),
		ExpiryTime: int64Ptr(0),
		SubID:      GenerateSubID(),
	}
}

func stringPtr(s string) *string { return &s }
func intPtr(n int) *int          { return &n }
func int64Ptr(n int64) *int64    { return &n }
func boolPtr(b bool) *bool       { return &b }
