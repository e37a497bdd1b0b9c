package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"xui-manager/internal/config"
	xuierrors "xui-manager/internal/errors"
	"xui-manager/internal/models"
	"xui-manager/pkg/xrayclient"
)

// Action describes what EnsureClient did on one inbound
type Action string

const (
	ActionUpdated Action = "updated"
	ActionCreated Action = "created"
	ActionNone    Action = "none"
)

// Result is the per-inbound outcome of a batch run. Failures are values,
// not aborts: one inbound's error never stops the others.
type Result struct {
	InboundID int
	Remark    string
	Action    Action
	Client    models.Client
	Err       error
}

// Ok reports whether the inbound was processed without error
func (r Result) Ok() bool {
	return r.Err == nil
}

// ManagerService drives the panel API client for a single server
type ManagerService struct {
	client *xrayclient.Client
	config *config.Config
	logger *logrus.Logger
}

// NewManagerService creates a new manager service
func NewManagerService(cfg *config.Config, logger *logrus.Logger) *ManagerService {
	return &ManagerService{
		client: xrayclient.NewClient(cfg, logger),
		config: cfg,
		logger: logger,
	}
}

// Login authenticates the underlying session
func (s *ManagerService) Login(ctx context.Context) error {
	return s.client.Login(ctx)
}

// GetInbounds gets the inbounds from the server
func (s *ManagerService) GetInbounds(ctx context.Context) ([]models.Inbound, error) {
	return s.client.ListInbounds(ctx)
}

// AddClient creates a client on one inbound
func (s *ManagerService) AddClient(ctx context.Context, inboundID int, label, secret string) (models.Client, error) {
	return s.client.AddClient(ctx, inboundID, label, secret)
}

// UpdateClient rotates a client secret on one inbound
func (s *ManagerService) UpdateClient(ctx context.Context, inboundID int, identifier, newSecret string) (models.Client, error) {
	return s.client.UpdateClient(ctx, inboundID, identifier, newSecret)
}

// EnsureClient makes sure the identified client exists on every selected
// inbound with the requested secret: matched clients are updated, absent
// ones are created. Inbounds are processed one at a time in the order
// given and each outcome is recorded independently.
func (s *ManagerService) EnsureClient(ctx context.Context, inbounds []models.Inbound, selectedIDs []int, identifier, secret string) []Result {
	results := make([]Result, 0, len(selectedIDs))

	remarks := make(map[int]string, len(inbounds))
	for _, inbound := range inbounds {
		remarks[inbound.ID] = inbound.Remark
	}

	for _, id := range selectedIDs {
		s.logger.Infof("Processing inbound %d (%s)", id, remarks[id])

		result := Result{InboundID: id, Remark: remarks[id], Action: ActionNone}

		client, err := s.client.UpdateClient(ctx, id, identifier, secret)
		switch {
		case err == nil:
			result.Action = ActionUpdated
			result.Client = client
		case isClientNotFound(err):
			client, err = s.client.AddClient(ctx, id, identifier, secret)
			if err == nil {
				result.Action = ActionCreated
				result.Client = client
			} else {
				result.Err = err
			}
		default:
			result.Err = err
		}

		if result.Err != nil {
			s.logger.Errorf("Inbound %d failed: %v", id, result.Err)
		}
		results = append(results, result)
	}

	return results
}

// isClientNotFound distinguishes "client absent, create it" from every
// other failure, including a missing inbound.
func isClientNotFound(err error) bool {
	var notFound *xuierrors.NotFoundError
	return errors.As(err, &notFound) && notFound.Kind == "client"
}
