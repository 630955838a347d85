package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Elysium-Labs-EU/graphctl/internal/database"
	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

// LocalRegistry keeps implementing services in the local state database.
// Composition here only tracks a hash of the active partial schemas so it
// can tell whether the gateway configuration changed.
type LocalRegistry struct {
	db     database.Database
	logger *zap.Logger
}

var _ Registry = (*LocalRegistry)(nil)

func NewLocalRegistry(db database.Database, logger *zap.Logger) *LocalRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalRegistry{db: db, logger: logger.Named("local-registry")}
}

func (r *LocalRegistry) RemoveServiceAndCompose(ctx context.Context, input RemoveServiceInput) (types.RemovalOutcome, error) {
	removed, err := r.db.RemoveImplementingService(ctx, input.ID, input.GraphVariant, input.Name)
	if err != nil {
		return types.RemovalOutcome{}, err
	}
	if !removed {
		return types.RemovalOutcome{
			Errors: []types.ErrorDetail{{
				Message: fmt.Sprintf("No implementing service %q found for graph %s with variant %s", input.Name, input.ID, input.GraphVariant),
			}},
		}, nil
	}

	updated, err := r.compose(ctx, input.ID, input.GraphVariant)
	if err != nil {
		return types.RemovalOutcome{}, err
	}

	return types.RemovalOutcome{Errors: []types.ErrorDetail{}, UpdatedGateway: updated}, nil
}

func (r *LocalRegistry) UpsertServiceAndCompose(ctx context.Context, input UpsertServiceInput) (types.CompositionOutcome, error) {
	if strings.TrimSpace(input.SDL) == "" {
		return types.CompositionOutcome{
			Errors: []types.ErrorDetail{{Message: fmt.Sprintf("The partial schema for %s is empty", input.Name)}},
		}, nil
	}

	err := r.db.UpsertImplementingService(ctx, input.ID, input.GraphVariant, database.ServiceRecord{
		Name:     input.Name,
		URL:      input.URL,
		Revision: input.Revision,
		SDL:      input.SDL,
	})
	if err != nil {
		return types.CompositionOutcome{}, err
	}

	updated, err := r.compose(ctx, input.ID, input.GraphVariant)
	if err != nil {
		return types.CompositionOutcome{}, err
	}

	return types.CompositionOutcome{Errors: []types.ErrorDetail{}, UpdatedGateway: updated}, nil
}

func (r *LocalRegistry) ListImplementingServices(ctx context.Context, graphID string, graphVariant string) ([]types.ImplementingService, error) {
	records, err := r.db.GetImplementingServices(ctx, graphID, graphVariant)
	if err != nil {
		return nil, err
	}

	services := make([]types.ImplementingService, 0, len(records))
	for _, record := range records {
		services = append(services, types.ImplementingService{
			Name:      record.Name,
			URL:       record.URL,
			Revision:  record.Revision,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.UpdatedAt,
		})
	}
	return services, nil
}

// compose stores the schema hash of the remaining services and reports
// whether it differs from the previously stored one.
func (r *LocalRegistry) compose(ctx context.Context, graphID string, graphVariant string) (bool, error) {
	records, err := r.db.GetImplementingServices(ctx, graphID, graphVariant)
	if err != nil {
		return false, err
	}

	schemaHash := CompositionHash(records)
	previous, err := r.db.GetCompositionHash(ctx, graphID, graphVariant)
	if err != nil {
		return false, err
	}

	r.logger.Debug("composed variant",
		zap.String("graph", graphID),
		zap.String("variant", graphVariant),
		zap.Int("services", len(records)),
		zap.String("schemaHash", schemaHash),
	)

	if schemaHash == previous {
		return false, nil
	}
	if err := r.db.SetCompositionHash(ctx, graphID, graphVariant, schemaHash); err != nil {
		return false, err
	}
	return true, nil
}

// CompositionHash hashes name, url and SDL of every record. Records are
// expected in name order, as the database returns them.
func CompositionHash(records []database.ServiceRecord) string {
	if len(records) == 0 {
		return ""
	}
	h := sha256.New()
	for _, record := range records {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00", record.Name, record.URL, record.SDL)
	}
	return hex.EncodeToString(h.Sum(nil))
}
