package helpers

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xuierrors "xui-manager/internal/errors"
	"xui-manager/internal/models"
)

func TestShareLinkVless(t *testing.T) {
	inbound := models.Inbound{ID: 1, Remark: "A", Protocol: models.VLESS, Port: 443}
	client := models.Client{ID: "2c8f9a6e-1111-4222-8333-444455556666", Email: "a@x.com"}

	link, err := ShareLink(inbound, client, "panel.example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "vless://2c8f9a6e-1111-4222-8333-444455556666@panel.example.com:443"))
	assert.Contains(t, link, "#a@x.com")
}

func TestShareLinkVmess(t *testing.T) {
	inbound := models.Inbound{ID: 2, Remark: "B", Protocol: models.VMess, Port: 10086}
	client := models.Client{ID: "vmess-uuid", Email: "b@x.com"}

	link, err := ShareLink(inbound, client, "panel.example.com")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "vmess://"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(link, "vmess://"))
	require.NoError(t, err)

	var doc map[string]string
	require.NoError(t, json.Unmarshal(decoded, &doc))
	assert.Equal(t, "vmess-uuid", doc["id"])
	assert.Equal(t, "b@x.com", doc["ps"])
	assert.Equal(t, "panel.example.com", doc["add"])
	assert.Equal(t, "10086", doc["port"])
}

func TestShareLinkTrojan(t *testing.T) {
	inbound := models.Inbound{ID: 3, Remark: "C", Protocol: models.Trojan, Port: 8443}
	client := models.Client{Password: "tr-secret", Email: "c@x.com"}

	link, err := ShareLink(inbound, client, "panel.example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "trojan://tr-secret@panel.example.com:8443"))
}

func TestShareLinkPrefersDedicatedListenAddress(t *testing.T) {
	inbound := models.Inbound{ID: 3, Protocol: models.Trojan, Port: 8443, Listen: "10.0.0.5"}
	client := models.Client{Password: "p"}

	link, err := ShareLink(inbound, client, "panel.example.com")
	require.NoError(t, err)
	assert.Contains(t, link, "@10.0.0.5:8443")
}

func TestShareLinkUnsupportedProtocol(t *testing.T) {
	inbound := models.Inbound{ID: 4, Protocol: "shadowsocks", Port: 1080}

	_, err := ShareLink(inbound, models.Client{}, "panel.example.com")

	var unsupported *xuierrors.UnsupportedProtocolError
	require.ErrorAs(t, err, &unsupported)
}

func TestPanelHost(t *testing.T) {
	assert.Equal(t, "panel.example.com", PanelHost("https://panel.example.com:2053"))
	assert.Equal(t, "10.0.0.1", PanelHost("http://10.0.0.1:54321/"))
}

func TestFormatGB(t *testing.T) {
	assert.Equal(t, "0.00 GB", FormatGB(0))
	assert.Equal(t, "1.50 GB", FormatGB(1610612736))
}
