package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Elysium-Labs-EU/graphctl/internal/config"
	"github.com/Elysium-Labs-EU/graphctl/internal/registry"
	"github.com/Elysium-Labs-EU/graphctl/internal/types"
)

type fakeRegistry struct {
	removeCalls []registry.RemoveServiceInput
	upsertCalls []registry.UpsertServiceInput
	outcome     types.RemovalOutcome
	composition types.CompositionOutcome
	services    []types.ImplementingService
	err         error
}

func (f *fakeRegistry) RemoveServiceAndCompose(_ context.Context, input registry.RemoveServiceInput) (types.RemovalOutcome, error) {
	f.removeCalls = append(f.removeCalls, input)
	return f.outcome, f.err
}

func (f *fakeRegistry) UpsertServiceAndCompose(_ context.Context, input registry.UpsertServiceInput) (types.CompositionOutcome, error) {
	f.upsertCalls = append(f.upsertCalls, input)
	return f.composition, f.err
}

func (f *fakeRegistry) ListImplementingServices(context.Context, string, string) ([]types.ImplementingService, error) {
	return f.services, f.err
}

func runCmd(t *testing.T, reg registry.Registry, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer

	cmd := newTestRootCmd(reg, cfg)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	output, err := runCmd(t, &fakeRegistry{}, &config.Config{Name: "mygraph"})
	if err != nil {
		t.Fatalf("Root command should not return an error, got: %v", err)
	}

	if !strings.Contains(output, "graphctl - Test version") {
		t.Errorf("Expected output to contain 'graphctl - Test version', got %s", output)
	}
	if !strings.Contains(output, "graphctl help") {
		t.Errorf("Expected output to contain help text, got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := runCmd(t, &fakeRegistry{}, &config.Config{Name: "mygraph"}, "--help")
	if err != nil {
		t.Fatalf("Help command should not return an error, got: %v", err)
	}

	if !strings.Contains(output, "graphctl manages the implementing services") {
		t.Errorf("Expected help to contain description, got: '%s'", output)
	}
	if !strings.Contains(output, "service") {
		t.Errorf("Expected help to list the service command, got: '%s'", output)
	}
}

func TestServiceDeleteHelpHidesDeprecatedFlags(t *testing.T) {
	output, err := runCmd(t, &fakeRegistry{}, &config.Config{Name: "mygraph"}, "service", "delete", "--help")
	if err != nil {
		t.Fatalf("Help should not return an error, got: %v", err)
	}

	if !strings.Contains(output, "--variant") || !strings.Contains(output, "--serviceName") {
		t.Errorf("Expected help to document --variant and --serviceName, got: %s", output)
	}
	if strings.Contains(output, "--tag") || strings.Contains(output, "--federated") {
		t.Errorf("Expected deprecated flags to be hidden, got: %s", output)
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runCmd(t, nil, nil, "version")
	if err != nil {
		t.Fatalf("Version command should not return an error, got: %v", err)
	}
	if !strings.Contains(output, "graphctl dev") {
		t.Errorf("Expected build info, got: %s", output)
	}

	output, err = runCmd(t, nil, nil, "version", "--short")
	if err != nil {
		t.Fatalf("Version command should not return an error, got: %v", err)
	}
	if output != "dev\n" {
		t.Errorf("Expected only the version, got: %q", output)
	}
}
