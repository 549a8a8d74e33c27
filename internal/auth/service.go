package auth

import (
	"context"

	"github.com/reforest-platform/reforest-web/internal/platform"
)

// Gateway is the slice of the platform client the auth flows need.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*platform.LoginResult, error)
	Register(ctx context.Context, reg platform.Registration) (*platform.UserAck, error)
}

// Service wraps authentication flows against the remote platform. All
// credential checking happens upstream; this layer only relays and shapes
// results.
type Service struct {
	gateway Gateway
}

// NewService constructs a new Service.
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Authenticate exchanges credentials for a bearer token and role tag.
func (s *Service) Authenticate(ctx context.Context, email, password string) (token string, role Role, err error) {
	result, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return "", "", err
	}
	return result.AccessToken, Role(result.UserType), nil
}

// RegisterAccount creates a platform account.
func (s *Service) RegisterAccount(ctx context.Context, reg platform.Registration) error {
	_, err := s.gateway.Register(ctx, reg)
	return err
}
