package types

import "time"

const DefaultGraphVariant = "current"

type TargetIdentity struct {
	GraphID      string `json:"graphId"`
	GraphVariant string `json:"graphVariant"`
	ServiceName  string `json:"serviceName"`
}

type ErrorDetail struct {
	Message string `json:"message"`
}

// RemovalOutcome is what the registry answers to a remove-and-recompose request.
type RemovalOutcome struct {
	Errors         []ErrorDetail `json:"errors"`
	UpdatedGateway bool          `json:"updatedGateway"`
}

type RemovalResult struct {
	ServiceName    string        `json:"serviceName"`
	GraphVariant   string        `json:"graphVariant"`
	GraphName      string        `json:"graphName"`
	Errors         []ErrorDetail `json:"errors"`
	UpdatedGateway bool          `json:"updatedGateway"`
}

type CompositionOutcome struct {
	Errors         []ErrorDetail `json:"errors"`
	UpdatedGateway bool          `json:"updatedGateway"`
}

type PushResult struct {
	ServiceName    string        `json:"serviceName"`
	GraphVariant   string        `json:"graphVariant"`
	GraphName      string        `json:"graphName"`
	Errors         []ErrorDetail `json:"errors"`
	UpdatedGateway bool          `json:"updatedGateway"`
}

type ImplementingService struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Revision  string    `json:"revision"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
