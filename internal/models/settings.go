package models

import (
	"encoding/json"
	"fmt"
)

// InboundSettings is the decoded form of an inbound's settings blob.
type InboundSettings struct {
	Clients []Client `json:"clients"`
}

// ParseSettings decodes the clients list out of a settings blob.
func ParseSettings(raw string) (*InboundSettings, error) {
	var settings InboundSettings
	if raw == "" {
		return &settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse inbound settings: %w", err)
	}
	return &settings, nil
}

// PatchClient applies mutate to the first client whose id or email
// equals identifier exactly, and re-encodes the settings blob. The
// document is handled as raw JSON throughout, so fields this tool does
// not model survive the round trip, on the matched client and its
// neighbors alike. The typed form of the client after mutation is
// returned alongside the new blob; found is false when no client
// matched and the blob comes back unchanged.
func PatchClient(raw, identifier string, mutate func(map[string]interface{})) (settings string, updated Client, found bool, err error) {
	if identifier == "" {
		return raw, Client{}, false, nil
	}

	doc := map[string]interface{}{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return "", Client{}, false, fmt.Errorf("failed to parse inbound settings: %w", err)
		}
	}

	clients, _ := doc["clients"].([]interface{})
	for _, entry := range clients {
		clientMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := clientMap["id"].(string)
		email, _ := clientMap["email"].(string)
		if id != identifier && email != identifier {
			continue
		}

		mutate(clientMap)

		out, err := json.Marshal(doc)
		if err != nil {
			return "", Client{}, false, fmt.Errorf("failed to serialize inbound settings: %w", err)
		}

		entryJSON, err := json.Marshal(clientMap)
		if err == nil {
			err = json.Unmarshal(entryJSON, &updated)
		}
		if err != nil {
			return "", Client{}, false, fmt.Errorf("failed to decode updated client: %w", err)
		}

		return string(out), updated, true, nil
	}

	return raw, Client{}, false, nil
}

// SingleClientSettings builds the minimal settings payload the addClient
// endpoint expects: just the one new client, nothing else.
func SingleClientSettings(client Client) (string, error) {
	out, err := json.Marshal(InboundSettings{Clients: []Client{client}})
	if err != nil {
		return "", fmt.Errorf("failed to serialize client settings: %w", err)
	}
	return string(out), nil
}
