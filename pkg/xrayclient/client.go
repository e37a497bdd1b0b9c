package xrayclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"xui-manager/internal/config"
	"xui-manager/internal/constants"
	xuierrors "xui-manager/internal/errors"
	"xui-manager/internal/models"
)

const sessionCacheKey = "session"

// Client owns one authenticated session against a 3x-ui panel. It is
// created once at startup; the authenticated flag flips to true on a
// successful login and never back. Calls are never retried: every
// failure is surfaced to the caller for that one request.
type Client struct {
	httpClient    *resty.Client
	cfg           *config.Config
	cookieCache   *cache.Cache
	logger        *logrus.Logger
	authenticated bool
}

// apiResponse is the envelope every panel endpoint answers with
type apiResponse struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Obj     json.RawMessage `json:"obj"`
}

// NewClient creates a new panel API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(constants.RequestTimeout * time.Second)

	if !cfg.VerifySSL {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		httpClient:  httpClient,
		cfg:         cfg,
		cookieCache: cache.New(constants.CacheExpiration*time.Minute, constants.CacheCleanupInterval*time.Minute),
		logger:      logger,
	}
}

// Authenticated reports whether a login has succeeded on this session
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Login authenticates against the panel with form-encoded credentials.
// The transport may succeed while the panel still rejects the login, so
// the success flag in the body is checked separately.
func (c *Client) Login(ctx context.Context) error {
	c.logger.Infof("Logging in to panel at %s", c.cfg.URL)
	c.logger.Debugf("Using username: %s", c.cfg.Username)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": c.cfg.Username,
			"password": c.cfg.Password,
		}).
		Post(constants.LoginPath)

	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	if !isSuccessStatus(resp.StatusCode()) {
		c.logger.Errorf("Login failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return &xuierrors.HTTPStatusError{Operation: "login", Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return &xuierrors.MalformedResponseError{Operation: "login", Body: string(resp.Body())}
	}

	if !apiResp.Success {
		return &xuierrors.APIError{Operation: "login", Message: apiResp.Msg}
	}

	// Keep the session cookies for all subsequent requests
	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.cookieCache.Set(sessionCacheKey, cookies, cache.DefaultExpiration)
	}

	c.authenticated = true
	c.logger.Info("Successfully logged in to panel")
	return nil
}

// execute is the single chokepoint for every authenticated call. It
// rejects calls before login without touching the network, sends form
// bodies for POST, and layers the failure modes in order: transport,
// HTTP status, body shape, panel success flag.
func (c *Client) execute(ctx context.Context, op, method, path string, form map[string]string) (*apiResponse, error) {
	if !c.authenticated {
		return nil, &xuierrors.NotAuthenticatedError{}
	}

	req := c.httpClient.R().SetContext(ctx)
	if cookies, found := c.cookieCache.Get(sessionCacheKey); found {
		req.SetCookies(cookies.([]*http.Cookie))
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = req.Get(path)
	case http.MethodPost:
		if form != nil {
			req.SetFormData(form)
		}
		resp, err = req.Post(path)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}

	c.logger.Debugf("%s response status: %d", op, resp.StatusCode())

	if !isSuccessStatus(resp.StatusCode()) {
		c.logger.Errorf("%s failed - Status: %d, Response: %s", op, resp.StatusCode(), string(resp.Body()))
		return nil, &xuierrors.HTTPStatusError{Operation: op, Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	if len(resp.Body()) == 0 {
		return nil, &xuierrors.MalformedResponseError{Operation: op, Body: ""}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		return nil, &xuierrors.MalformedResponseError{Operation: op, Body: string(resp.Body())}
	}

	if !apiResp.Success {
		c.logger.Errorf("%s failed with panel message: %s", op, apiResp.Msg)
		return nil, &xuierrors.APIError{Operation: op, Message: apiResp.Msg}
	}

	return &apiResp, nil
}

// ListInbounds fetches all inbounds in server order
func (c *Client) ListInbounds(ctx context.Context) ([]models.Inbound, error) {
	apiResp, err := c.execute(ctx, "list inbounds", http.MethodGet, constants.InboundListPath, nil)
	if err != nil {
		return nil, err
	}

	var inbounds []models.Inbound
	if len(apiResp.Obj) > 0 {
		if err := json.Unmarshal(apiResp.Obj, &inbounds); err != nil {
			return nil, &xuierrors.MalformedResponseError{Operation: "list inbounds", Body: string(apiResp.Obj)}
		}
	}

	return inbounds, nil
}

// GetInbound fetches one inbound by id. The panel has no single-item
// endpoint, so this lists everything and scans; inbound counts are tens,
// not thousands.
func (c *Client) GetInbound(ctx context.Context, id int) (models.Inbound, error) {
	inbounds, err := c.ListInbounds(ctx)
	if err != nil {
		return models.Inbound{}, err
	}

	for _, inbound := range inbounds {
		if inbound.ID == id {
			return inbound, nil
		}
	}

	return models.Inbound{}, &xuierrors.NotFoundError{Kind: "inbound", ID: strconv.Itoa(id)}
}

// UpdateInbound replaces an inbound's settings document in full. The
// settings field is submitted in its JSON-string form inside a form
// body; there is no partial merge at the protocol level.
func (c *Client) UpdateInbound(ctx context.Context, inbound models.Inbound) error {
	c.logger.Infof("Updating inbound %d (%s)", inbound.ID, inbound.Remark)

	_, err := c.execute(ctx, "update inbound", http.MethodPost, constants.InboundUpdatePath, map[string]string{
		"id":       strconv.Itoa(inbound.ID),
		"settings": inbound.Settings,
	})
	return err
}

// AddClient creates a new client in the inbound's settings. Only the new
// client is submitted, wrapped in a minimal settings object: pushing the
// full document to the addClient endpoint trips the panel's duplicate
// detection. The created client record is returned.
func (c *Client) AddClient(ctx context.Context, inboundID int, label, secret string) (models.Client, error) {
	inbound, err := c.GetInbound(ctx, inboundID)
	if err != nil {
		return models.Client{}, err
	}

	protocol := models.ParseProtocol(inbound.Protocol.String())
	if !protocol.Supported() {
		return models.Client{}, &xuierrors.UnsupportedProtocolError{Protocol: protocol.String()}
	}

	settings, err := models.ParseSettings(inbound.Settings)
	if err != nil {
		return models.Client{}, err
	}
	for _, existing := range settings.Clients {
		if existing.Email == label || (existing.ID != "" && existing.ID == label) {
			return models.Client{}, &xuierrors.DuplicateClientError{Email: label}
		}
	}

	clientSpec, err := models.NewClientSpec(protocol, label, secret)
	if err != nil {
		return models.Client{}, err
	}
	client := clientSpec.Build()

	payload, err := models.SingleClientSettings(client)
	if err != nil {
		return models.Client{}, err
	}

	c.logger.Infof("Adding client %s to inbound %d", client.Email, inboundID)

	_, err = c.execute(ctx, "add client", http.MethodPost, constants.AddClientPath, map[string]string{
		"id":       strconv.Itoa(inboundID),
		"settings": payload,
	})
	if err != nil {
		return models.Client{}, err
	}

	c.logger.Infof("Successfully added client %s to inbound %d", client.Email, inboundID)
	return client, nil
}

// UpdateClient finds the first client whose UUID or email equals
// identifier exactly, rotates its secret and re-submits the whole
// inbound. The matched client is patched inside the raw settings
// document, so fields this tool does not model are preserved across
// the round trip. When no new secret is supplied, an empty secret
// field is backfilled with a generated one and everything else is
// left alone.
func (c *Client) UpdateClient(ctx context.Context, inboundID int, identifier, newSecret string) (models.Client, error) {
	inbound, err := c.GetInbound(ctx, inboundID)
	if err != nil {
		return models.Client{}, err
	}

	protocol := models.ParseProtocol(inbound.Protocol.String())
	if !protocol.Supported() {
		return models.Client{}, &xuierrors.UnsupportedProtocolError{Protocol: protocol.String()}
	}

	field := c.secretField(protocol)
	newRaw, updated, found, err := models.PatchClient(inbound.Settings, identifier, func(client map[string]interface{}) {
		if newSecret != "" {
			client[field] = newSecret
			return
		}
		if current, _ := client[field].(string); current == "" {
			client[field] = uuid.New().String()
		}
	})
	if err != nil {
		return models.Client{}, err
	}
	if !found {
		return models.Client{}, &xuierrors.NotFoundError{Kind: "client", ID: identifier}
	}
	inbound.Settings = newRaw

	if err := c.UpdateInbound(ctx, inbound); err != nil {
		return models.Client{}, err
	}

	c.logger.Infof("Successfully updated client %s in inbound %d", identifier, inboundID)
	return updated, nil
}

// secretField names the protocol-appropriate secret field. For vless
// the target is a configuration choice: rotating the id changes the
// client's login UUID, rotating the password does not.
func (c *Client) secretField(protocol models.Protocol) string {
	switch protocol {
	case models.Trojan:
		return "password"
	case models.VMess:
		return "id"
	default:
		if c.cfg.VlessSecretField == config.VlessSecretID {
			return "id"
		}
		return "password"
	}
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
