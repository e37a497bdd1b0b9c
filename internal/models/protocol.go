package models

import "strings"

// Protocol identifies the proxy protocol an inbound speaks
type Protocol string

const (
	VLESS  Protocol = "vless"
	VMess  Protocol = "vmess"
	Trojan Protocol = "trojan"
)

// ParseProtocol normalizes a protocol string from the panel
func ParseProtocol(s string) Protocol {
	return Protocol(strings.ToLower(strings.TrimSpace(s)))
}

// Supported reports whether client management is implemented for the protocol
func (p Protocol) Supported() bool {
	switch p {
	case VLESS, VMess, Trojan:
		return true
	}
	return false
}

// String returns the protocol in its wire form
func (p Protocol) String() string {
	return string(p)
}
