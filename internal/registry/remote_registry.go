package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Elysium-Labs-EU/graphctl/internal/buildinfo"
	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

const (
	clientName       = "graphctl"
	maxResponseBytes = 10 * 1024 * 1024
)

const removeServiceMutation = `mutation RemoveServiceAndCompose($id: ID!, $graphVariant: String!, $name: String!) {
  service(id: $id) {
    removeImplementingServiceAndTriggerComposition(graphVariant: $graphVariant, name: $name) {
      errors {
        message
      }
      updatedGateway: didUpdateGateway
    }
  }
}`

const upsertServiceMutation = `mutation UpsertServiceAndCompose($id: ID!, $graphVariant: String!, $name: String!, $url: String!, $revision: String!, $activePartialSchema: PartialSchemaInput!) {
  service(id: $id) {
    upsertImplementingServiceAndTriggerComposition(graphVariant: $graphVariant, name: $name, url: $url, revision: $revision, activePartialSchema: $activePartialSchema) {
      errors {
        message
      }
      updatedGateway: didUpdateGateway
    }
  }
}`

const listServicesQuery = `query ListImplementingServices($id: ID!, $graphVariant: String!) {
  service(id: $id) {
    implementingServices(graphVariant: $graphVariant) {
      __typename
      ... on FederatedImplementingServices {
        services {
          name
          url
          revision
          createdAt
          updatedAt
        }
      }
    }
  }
}`

type RemoteRegistry struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Registry = (*RemoteRegistry)(nil)

func NewRemoteRegistry(endpoint string, apiKey string, timeout time.Duration, logger *zap.Logger) *RemoteRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteRegistry{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("registry"),
	}
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// sendRequest performs one GraphQL round trip and decodes data into out.
// Any failure here is a transport failure: the registry did not answer with
// a usable payload.
func (r *RemoteRegistry) sendRequest(ctx context.Context, operationName string, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{
		OperationName: operationName,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apollographql-client-name", clientName)
	req.Header.Set("apollographql-client-version", buildinfo.ClientVersion())
	if r.apiKey != "" {
		req.Header.Set("x-api-key", r.apiKey)
	}

	r.logger.Debug("sending registry request", zap.String("operation", operationName), zap.String("endpoint", r.endpoint))
	started := time.Now()

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach registry: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	r.logger.Debug("registry responded",
		zap.String("operation", operationName),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedResponse, resp.Status, strings.TrimSpace(string(payload)))
	}

	var response graphQLResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", ErrUnexpectedResponse, err)
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, e := range response.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("registry error: %s", strings.Join(messages, "\n"))
	}

	if err := json.Unmarshal(response.Data, out); err != nil {
		return fmt.Errorf("%w: failed to parse response data: %v", ErrUnexpectedResponse, err)
	}

	return nil
}

func (r *RemoteRegistry) RemoveServiceAndCompose(ctx context.Context, input RemoveServiceInput) (types.RemovalOutcome, error) {
	var data struct {
		Service *struct {
			Result *types.RemovalOutcome `json:"removeImplementingServiceAndTriggerComposition"`
		} `json:"service"`
	}

	err := r.sendRequest(ctx, "RemoveServiceAndCompose", removeServiceMutation, map[string]any{
		"id":           input.ID,
		"graphVariant": input.GraphVariant,
		"name":         input.Name,
	}, &data)
	if err != nil {
		return types.RemovalOutcome{}, err
	}

	if data.Service == nil {
		return types.RemovalOutcome{}, fmt.Errorf("%w: %s (check the graph name and API key)", ErrGraphNotFound, input.ID)
	}
	if data.Service.Result == nil {
		return types.RemovalOutcome{}, fmt.Errorf("%w: no removal result for %s", ErrUnexpectedResponse, input.Name)
	}

	return *data.Service.Result, nil
}

func (r *RemoteRegistry) UpsertServiceAndCompose(ctx context.Context, input UpsertServiceInput) (types.CompositionOutcome, error) {
	var data struct {
		Service *struct {
			Result *types.CompositionOutcome `json:"upsertImplementingServiceAndTriggerComposition"`
		} `json:"service"`
	}

	partialSchema := map[string]string{"sdl": input.SDL}
	err := r.sendRequest(ctx, "UpsertServiceAndCompose", upsertServiceMutation, map[string]any{
		"id":                  input.ID,
		"graphVariant":        input.GraphVariant,
		"name":                input.Name,
		"url":                 input.URL,
		"revision":            input.Revision,
		"activePartialSchema": partialSchema,
	}, &data)
	if err != nil {
		return types.CompositionOutcome{}, err
	}

	if data.Service == nil {
		return types.CompositionOutcome{}, fmt.Errorf("%w: %s (check the graph name and API key)", ErrGraphNotFound, input.ID)
	}
	if data.Service.Result == nil {
		return types.CompositionOutcome{}, fmt.Errorf("%w: no composition result for %s", ErrUnexpectedResponse, input.Name)
	}

	return *data.Service.Result, nil
}

func (r *RemoteRegistry) ListImplementingServices(ctx context.Context, graphID string, graphVariant string) ([]types.ImplementingService, error) {
	var data struct {
		Service *struct {
			ImplementingServices *struct {
				Typename string                      `json:"__typename"`
				Services []types.ImplementingService `json:"services"`
			} `json:"implementingServices"`
		} `json:"service"`
	}

	err := r.sendRequest(ctx, "ListImplementingServices", listServicesQuery, map[string]any{
		"id":           graphID,
		"graphVariant": graphVariant,
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.Service == nil {
		return nil, fmt.Errorf("%w: %s (check the graph name and API key)", ErrGraphNotFound, graphID)
	}
	implementing := data.Service.ImplementingServices
	if implementing == nil {
		return nil, nil
	}
	if implementing.Typename == "NonFederatedImplementingService" {
		return nil, fmt.Errorf("%w: %s@%s", ErrNotFederated, graphID, graphVariant)
	}

	return implementing.Services, nil
}
