package federation

import (
	"strings"

	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

// GraphConfig is the loaded project configuration as the pipeline sees it.
type GraphConfig interface {
	GraphName() string
	GraphTag() string
}

type variantOrigin int

const (
	originDefault variantOrigin = iota
	originTag
	originVariant
)

// VariantSource records where the requested variant came from. The legacy
// --tag flag and --variant are mutually exclusive, so at most one of them
// is ever the origin.
type VariantSource struct {
	origin variantOrigin
	value  string
}

func TagSource(tag string) VariantSource {
	return VariantSource{origin: originTag, value: tag}
}

func VariantFlag(variant string) VariantSource {
	return VariantSource{origin: originVariant, value: variant}
}

func DefaultVariant() VariantSource {
	return VariantSource{origin: originDefault}
}

// NewVariantSource builds the source from the two flags and whether each
// was explicitly supplied.
func NewVariantSource(tag string, tagSet bool, variant string, variantSet bool) (VariantSource, error) {
	switch {
	case tagSet && variantSet:
		return VariantSource{}, &UsageError{Message: MessageConflictFlags}
	case variantSet:
		return VariantFlag(variant), nil
	case tagSet:
		return TagSource(tag), nil
	default:
		return DefaultVariant(), nil
	}
}

func (s VariantSource) Value() string {
	if s.origin == originDefault || s.value == "" {
		return types.DefaultGraphVariant
	}
	return s.value
}

func (s VariantSource) Origin() string {
	switch s.origin {
	case originTag:
		return "tag"
	case originVariant:
		return "variant"
	default:
		return "default"
	}
}

// Flags is the delete command's input after flag parsing.
type Flags struct {
	Variant     VariantSource
	Federated   bool
	ServiceName string
}

// Resolve derives the target of a delete. A tag from the project config
// wins over any variant given on the command line.
func Resolve(flags Flags, graph GraphConfig) (types.TargetIdentity, error) {
	graphID, graphVariant, err := resolveGraph(flags.Variant, graph)
	if err != nil {
		return types.TargetIdentity{}, err
	}

	return types.TargetIdentity{
		GraphID:      graphID,
		GraphVariant: graphVariant,
		ServiceName:  flags.ServiceName,
	}, nil
}

func resolveGraph(variant VariantSource, graph GraphConfig) (string, string, error) {
	if graph == nil || strings.TrimSpace(graph.GraphName()) == "" {
		return "", "", &ConfigurationError{Message: MessageNoGraph}
	}

	graphVariant := graph.GraphTag()
	if graphVariant == "" {
		graphVariant = variant.Value()
	}
	return graph.GraphName(), graphVariant, nil
}

// Validate rejects a delete that names no federated service. --serviceName
// is already required by the flag layer, so this only fires when that
// requirement is bypassed; the deprecated --federated flag alone passes.
func Validate(flags Flags) error {
	if !flags.Federated && flags.ServiceName == "" {
		return &UsageError{Message: MessageNotFederated}
	}
	return nil
}
