package federation

import (
	"strings"

	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

const (
	MessageNoGraph       = "No service found to link to registry"
	MessageNotFederated  = "Deleting a service is only supported for federated services. Use the --serviceName flag if this is a federated service."
	MessageConflictFlags = "Only one of --tag and --variant can be set"
)

// ConfigurationError means no graph identity could be resolved.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// UsageError means the flags do not describe a valid invocation.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// TransportError wraps a failed round trip to the registry. The message is
// the underlying error's, unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError carries the errors a registry reported in a successful
// round trip, in the order received.
type ApplicationError struct {
	Details []types.ErrorDetail
}

func (e *ApplicationError) Error() string {
	messages := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		messages = append(messages, detail.Message)
	}
	return strings.Join(messages, "\n")
}
