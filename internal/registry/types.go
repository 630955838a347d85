package registry

import (
	"context"
	"errors"

	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

// Registry is the graph registry that owns implementing services and
// gateway composition. Each call is a single round trip.
type Registry interface {
	RemoveServiceAndCompose(ctx context.Context, input RemoveServiceInput) (types.RemovalOutcome, error)
	UpsertServiceAndCompose(ctx context.Context, input UpsertServiceInput) (types.CompositionOutcome, error)
	ListImplementingServices(ctx context.Context, graphID string, graphVariant string) ([]types.ImplementingService, error)
}

type RemoveServiceInput struct {
	ID           string `json:"id"`
	GraphVariant string `json:"graphVariant"`
	Name         string `json:"name"`
}

type UpsertServiceInput struct {
	ID           string `json:"id"`
	GraphVariant string `json:"graphVariant"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Revision     string `json:"revision"`
	SDL          string `json:"-"`
}

var (
	ErrGraphNotFound      = errors.New("graph not found")
	ErrNotFederated       = errors.New("graph variant is not federated")
	ErrUnexpectedResponse = errors.New("unexpected registry response")
)
