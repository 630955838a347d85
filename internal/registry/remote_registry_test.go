package registry_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elysium-Labs-EU/graphctl/internal/registry"
)

type capturedRequest struct {
	APIKey        string
	ClientName    string
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

func newRegistryServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		captured.APIKey = r.Header.Get("x-api-key")
		captured.ClientName = r.Header.Get("apollographql-client-name")

		payload, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(payload, captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestRemoteRemoveServiceAndCompose(t *testing.T) {
	server, captured := newRegistryServer(t, http.StatusOK, `{
		"data": {
			"service": {
				"removeImplementingServiceAndTriggerComposition": {
					"errors": [],
					"updatedGateway": true
				}
			}
		}
	}`)

	client := registry.NewRemoteRegistry(server.URL, "service:mygraph:secret", 5*time.Second, nil)
	outcome, err := client.RemoveServiceAndCompose(t.Context(), registry.RemoveServiceInput{
		ID:           "mygraph",
		GraphVariant: "current",
		Name:         "accounts",
	})
	require.NoError(t, err)

	assert.True(t, outcome.UpdatedGateway)
	assert.Empty(t, outcome.Errors)

	assert.Equal(t, "service:mygraph:secret", captured.APIKey)
	assert.Equal(t, "graphctl", captured.ClientName)
	assert.Equal(t, "RemoveServiceAndCompose", captured.OperationName)
	assert.Contains(t, captured.Query, "removeImplementingServiceAndTriggerComposition")
	assert.Equal(t, map[string]any{"id": "mygraph", "graphVariant": "current", "name": "accounts"}, captured.Variables)
}

func TestRemoteRemoveServiceAndCompose_ApplicationErrorsKeepOrder(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusOK, `{
		"data": {
			"service": {
				"removeImplementingServiceAndTriggerComposition": {
					"errors": [{"message": "first"}, {"message": "second"}, {"message": "third"}],
					"updatedGateway": true
				}
			}
		}
	}`)

	client := registry.NewRemoteRegistry(server.URL, "key", 5*time.Second, nil)
	outcome, err := client.RemoveServiceAndCompose(t.Context(), registry.RemoveServiceInput{ID: "mygraph", GraphVariant: "current", Name: "accounts"})
	require.NoError(t, err, "application errors are payload, not transport failures")

	require.Len(t, outcome.Errors, 3)
	assert.Equal(t, "first", outcome.Errors[0].Message)
	assert.Equal(t, "second", outcome.Errors[1].Message)
	assert.Equal(t, "third", outcome.Errors[2].Message)
	assert.True(t, outcome.UpdatedGateway)
}

func TestRemoteRemoveServiceAndCompose_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, "boom", registry.ErrUnexpectedResponse},
		{"unauthorized", http.StatusUnauthorized, `{"errors":[{"message":"invalid key"}]}`, registry.ErrUnexpectedResponse},
		{"not json", http.StatusOK, "<html>", registry.ErrUnexpectedResponse},
		{"null service", http.StatusOK, `{"data":{"service":null}}`, registry.ErrGraphNotFound},
		{"null result", http.StatusOK, `{"data":{"service":{"removeImplementingServiceAndTriggerComposition":null}}}`, registry.ErrUnexpectedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newRegistryServer(t, tt.status, tt.body)
			client := registry.NewRemoteRegistry(server.URL, "key", 5*time.Second, nil)

			_, err := client.RemoveServiceAndCompose(t.Context(), registry.RemoveServiceInput{ID: "mygraph", GraphVariant: "current", Name: "accounts"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRemoteRemoveServiceAndCompose_GraphQLErrors(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"not authorized"},{"message":"try again"}]}`)
	client := registry.NewRemoteRegistry(server.URL, "key", 5*time.Second, nil)

	_, err := client.RemoveServiceAndCompose(t.Context(), registry.RemoveServiceInput{ID: "mygraph", GraphVariant: "current", Name: "accounts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized\ntry again")
}

func TestRemoteRemoveServiceAndCompose_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := registry.NewRemoteRegistry(url, "key", time.Second, nil)
	_, err := client.RemoveServiceAndCompose(t.Context(), registry.RemoveServiceInput{ID: "mygraph", GraphVariant: "current", Name: "accounts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach registry")
}

func TestRemoteUpsertServiceAndCompose(t *testing.T) {
	server, captured := newRegistryServer(t, http.StatusOK, `{
		"data": {
			"service": {
				"upsertImplementingServiceAndTriggerComposition": {
					"errors": [{"message": "Field User.id conflicts"}],
					"updatedGateway": false
				}
			}
		}
	}`)

	client := registry.NewRemoteRegistry(server.URL, "", 5*time.Second, nil)
	outcome, err := client.UpsertServiceAndCompose(t.Context(), registry.UpsertServiceInput{
		ID:           "mygraph",
		GraphVariant: "staging",
		Name:         "accounts",
		URL:          "http://accounts:4001/graphql",
		Revision:     "abc123",
		SDL:          "type Query { me: ID }",
	})
	require.NoError(t, err)

	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "Field User.id conflicts", outcome.Errors[0].Message)
	assert.False(t, outcome.UpdatedGateway)

	assert.Empty(t, captured.APIKey, "no key header without a key")
	assert.Equal(t, "staging", captured.Variables["graphVariant"])
	assert.Equal(t, map[string]any{"sdl": "type Query { me: ID }"}, captured.Variables["activePartialSchema"])
}

func TestRemoteListImplementingServices(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusOK, `{
		"data": {
			"service": {
				"implementingServices": {
					"__typename": "FederatedImplementingServices",
					"services": [
						{"name": "accounts", "url": "http://accounts", "revision": "r1", "createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-03T03:04:05Z"},
						{"name": "reviews", "url": "http://reviews", "revision": null, "createdAt": "2026-01-02T03:04:05Z", "updatedAt": "2026-01-02T03:04:05Z"}
					]
				}
			}
		}
	}`)

	client := registry.NewRemoteRegistry(server.URL, "key", 5*time.Second, nil)
	services, err := client.ListImplementingServices(t.Context(), "mygraph", "current")
	require.NoError(t, err)

	require.Len(t, services, 2)
	assert.Equal(t, "accounts", services[0].Name)
	assert.Equal(t, "r1", services[0].Revision)
	assert.Equal(t, time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC), services[0].UpdatedAt.UTC())
	assert.Empty(t, services[1].Revision)
}

func TestRemoteListImplementingServices_NonFederated(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusOK, `{"data":{"service":{"implementingServices":{"__typename":"NonFederatedImplementingService"}}}}`)

	client := registry.NewRemoteRegistry(server.URL, "key", 5*time.Second, nil)
	_, err := client.ListImplementingServices(t.Context(), "mygraph", "current")
	require.ErrorIs(t, err, registry.ErrNotFederated)
}
