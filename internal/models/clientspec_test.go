package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xuierrors "xui-manager/internal/errors"
)

func TestNewClientSpecVlessFromEmail(t *testing.T) {
	spec, err := NewClientSpec(VLESS, "a@x.com", "secret-1")
	require.NoError(t, err)
	require.IsType(t, VlessSpec{}, spec)

	client := spec.Build()
	assert.Equal(t, "a@x.com", client.Email)
	assert.Equal(t, "secret-1", client.Password)
	_, parseErr := uuid.Parse(client.ID)
	assert.NoError(t, parseErr)

	require.NotNil(t, client.Flow)
	assert.Empty(t, *client.Flow)
	require.NotNil(t, client.Level)
	assert.Zero(t, *client.Level)
	require.NotNil(t, client.Enable)
	assert.True(t, *client.Enable)
	require.NotNil(t, client.TotalGB)
	assert.Zero(t, *client.TotalGB)
	assert.NotEmpty(t, client.SubID)
}

func TestNewClientSpecUUIDIdentifierBecomesID(t *testing.T) {
	id := uuid.New().String()

	for _, protocol := range []Protocol{VLESS, VMess} {
		t.Run(protocol.String(), func(t *testing.T) {
			spec, err := NewClientSpec(protocol, id, "")
			require.NoError(t, err)

			client := spec.Build()
			assert.Equal(t, id, client.ID)
			assert.Equal(t, "client-"+id[:8]+"@xui.local", client.Email)
		})
	}
}

func TestNewClientSpecVmessSecretIsID(t *testing.T) {
	spec, err := NewClientSpec(VMess, "a@x.com", "vmess-secret")
	require.NoError(t, err)
	require.IsType(t, VmessSpec{}, spec)

	client := spec.Build()
	assert.Equal(t, "vmess-secret", client.ID)
	assert.Empty(t, client.Password)
	require.NotNil(t, client.AlterID)
	assert.Zero(t, *client.AlterID)
}

func TestNewClientSpecTrojan(t *testing.T) {
	spec, err := NewClientSpec(Trojan, "a@x.com", "trojan-secret")
	require.NoError(t, err)
	require.IsType(t, TrojanSpec{}, spec)

	client := spec.Build()
	assert.Equal(t, "trojan-secret", client.Password)
	assert.Empty(t, client.ID)
}

func TestNewClientSpecGeneratesSecret(t *testing.T) {
	for _, protocol := range []Protocol{VLESS, VMess, Trojan} {
		t.Run(protocol.String(), func(t *testing.T) {
			spec, err := NewClientSpec(protocol, "a@x.com", "")
			require.NoError(t, err)

			client := spec.Build()
			_, parseErr := uuid.Parse(client.Secret(protocol))
			assert.NoError(t, parseErr)
		})
	}
}

func TestNewClientSpecUnsupportedProtocol(t *testing.T) {
	_, err := NewClientSpec(Protocol("socks"), "a@x.com", "")

	var unsupported *xuierrors.UnsupportedProtocolError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "socks", unsupported.Protocol)
}
