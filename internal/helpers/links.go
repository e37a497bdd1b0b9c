package helpers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	xuierrors "xui-manager/internal/errors"
	"xui-manager/internal/models"
)

// vmessLink is the JSON document a vmess:// URI carries, base64-encoded
type vmessLink struct {
	V    string `json:"v"`
	Ps   string `json:"ps"`
	Add  string `json:"add"`
	Port string `json:"port"`
	ID   string `json:"id"`
	Aid  string `json:"aid"`
	Net  string `json:"net"`
	Type string `json:"type"`
	TLS  string `json:"tls"`
}

// ShareLink builds the import URI for a client on the given inbound,
// addressed at host (the panel's hostname unless the inbound listens on
// a dedicated address).
func ShareLink(inbound models.Inbound, client models.Client, host string) (string, error) {
	if inbound.Listen != "" && inbound.Listen != "0.0.0.0" {
		host = inbound.Listen
	}

	switch models.ParseProtocol(inbound.Protocol.String()) {
	case models.VLESS:
		u := url.URL{
			Scheme:   "vless",
			Host:     fmt.Sprintf("%s:%d", host, inbound.Port),
			User:     url.User(client.ID),
			Fragment: client.Email,
		}
		q := u.Query()
		q.Set("type", "tcp")
		if client.Flow != nil && *client.Flow != "" {
			q.Set("flow", *client.Flow)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil

	case models.VMess:
		doc, err := json.Marshal(vmessLink{
			V:    "2",
			Ps:   client.Email,
			Add:  host,
			Port: fmt.Sprintf("%d", inbound.Port),
			ID:   client.ID,
			Aid:  "0",
			Net:  "tcp",
			Type: "none",
		})
		if err != nil {
			return "", fmt.Errorf("failed to serialize vmess link: %w", err)
		}
		return "vmess://" + base64.StdEncoding.EncodeToString(doc), nil

	case models.Trojan:
		u := url.URL{
			Scheme:   "trojan",
			Host:     fmt.Sprintf("%s:%d", host, inbound.Port),
			User:     url.User(client.Password),
			Fragment: client.Email,
		}
		return u.String(), nil

	default:
		return "", &xuierrors.UnsupportedProtocolError{Protocol: inbound.Protocol.String()}
	}
}

// PanelHost extracts the hostname from the configured panel URL
func PanelHost(panelURL string) string {
	u, err := url.Parse(panelURL)
	if err != nil || u.Hostname() == "" {
		return panelURL
	}
	return u.Hostname()
}
