package federation

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/Elysium-Labs-EU/graphctl/internal/registry"
	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

type Service struct {
	registry registry.Registry
	logger   *zap.Logger
}

func NewService(reg registry.Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: reg, logger: logger.Named("federation")}
}

// DeleteService resolves the target, validates it and asks the registry
// to remove the service and recompose, in that order. The registry is
// called exactly once, and only when both checks pass.
func (s *Service) DeleteService(ctx context.Context, flags Flags, graph GraphConfig) (types.RemovalResult, error) {
	s.logger.Debug("resolving target", zap.String("variantOrigin", flags.Variant.Origin()))
	target, err := Resolve(flags, graph)
	if err != nil {
		return types.RemovalResult{}, err
	}

	s.logger.Debug("validating target",
		zap.String("graph", target.GraphID),
		zap.String("variant", target.GraphVariant),
		zap.String("service", target.ServiceName),
		zap.Bool("federated", flags.Federated),
	)
	if err := Validate(flags); err != nil {
		return types.RemovalResult{}, err
	}

	s.logger.Debug("removing service and recomposing")
	outcome, err := s.registry.RemoveServiceAndCompose(ctx, registry.RemoveServiceInput{
		ID:           target.GraphID,
		GraphVariant: target.GraphVariant,
		Name:         target.ServiceName,
	})
	if err != nil {
		return types.RemovalResult{}, &TransportError{Err: err}
	}

	s.logger.Debug("registry answered", zap.Int("errors", len(outcome.Errors)), zap.Bool("updatedGateway", outcome.UpdatedGateway))
	return types.RemovalResult{
		ServiceName:    target.ServiceName,
		GraphVariant:   target.GraphVariant,
		GraphName:      target.GraphID,
		Errors:         slices.Clone(outcome.Errors),
		UpdatedGateway: outcome.UpdatedGateway,
	}, nil
}

type PushInput struct {
	Variant     VariantSource
	ServiceName string
	URL         string
	Revision    string
	SDL         string
}

func (s *Service) PushService(ctx context.Context, input PushInput, graph GraphConfig) (types.PushResult, error) {
	graphID, graphVariant, err := resolveGraph(input.Variant, graph)
	if err != nil {
		return types.PushResult{}, err
	}
	if input.ServiceName == "" {
		return types.PushResult{}, &UsageError{Message: "Pushing a service requires the --serviceName flag"}
	}

	s.logger.Debug("pushing service and recomposing",
		zap.String("graph", graphID),
		zap.String("variant", graphVariant),
		zap.String("service", input.ServiceName),
		zap.Int("sdlBytes", len(input.SDL)),
	)
	outcome, err := s.registry.UpsertServiceAndCompose(ctx, registry.UpsertServiceInput{
		ID:           graphID,
		GraphVariant: graphVariant,
		Name:         input.ServiceName,
		URL:          input.URL,
		Revision:     input.Revision,
		SDL:          input.SDL,
	})
	if err != nil {
		return types.PushResult{}, &TransportError{Err: err}
	}

	return types.PushResult{
		ServiceName:    input.ServiceName,
		GraphVariant:   graphVariant,
		GraphName:      graphID,
		Errors:         slices.Clone(outcome.Errors),
		UpdatedGateway: outcome.UpdatedGateway,
	}, nil
}

func (s *Service) ListServices(ctx context.Context, variant VariantSource, graph GraphConfig) (types.TargetIdentity, []types.ImplementingService, error) {
	graphID, graphVariant, err := resolveGraph(variant, graph)
	if err != nil {
		return types.TargetIdentity{}, nil, err
	}

	target := types.TargetIdentity{GraphID: graphID, GraphVariant: graphVariant}
	services, err := s.registry.ListImplementingServices(ctx, graphID, graphVariant)
	if err != nil {
		return target, nil, &TransportError{Err: err}
	}
	return target, services, nil
}
