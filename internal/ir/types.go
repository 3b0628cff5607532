package ir

import (
	"fmt"
	"strings"
)

// IOType is the transfer direction of a component or requirement.
type IOType int

const (
	// IOAny marks a bidirectional requirement. As a modifier filter it
	// matches modifiers of every direction.
	IOAny IOType = iota
	// IOInput consumes resources from a component.
	IOInput
	// IOOutput delivers resources into a component.
	IOOutput
)

// String returns the lowercase direction name used in definitions.
func (t IOType) String() string {
	switch t {
	case IOAny:
		return "any"
	case IOInput:
		return "input"
	case IOOutput:
		return "output"
	default:
		return fmt.Sprintf("IOType(%d)", int(t))
	}
}

// ParseIOType parses "input", "output" or "any" (case-insensitive).
// The empty string parses as IOAny; recipe validation rejects it first
// because requirements must name a direction.
func ParseIOType(s string) (IOType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "in":
		return IOInput, nil
	case "output", "out":
		return IOOutput, nil
	case "any", "":
		return IOAny, nil
	default:
		return IOAny, fmt.Errorf("unknown io type %q", s)
	}
}

// IsInput reports whether t takes part in input-side phases
// (start crafting, the gated tick pass).
func (t IOType) IsInput() bool {
	return t != IOOutput
}

// IsOutput reports whether t takes part in output-side phases
// (finish crafting, the ungated tick pass).
func (t IOType) IsOutput() bool {
	return t != IOInput
}

// ResourceType is the registry key of a resource kind.
type ResourceType string

// Reserved resource types.
const (
	ResourceEnergy ResourceType = "energy"
	ResourceItem   ResourceType = "item"
	ResourceFluid  ResourceType = "fluid"
	ResourceGas    ResourceType = "gas"
)

// Canonical returns the key used for component lookups.
// Keys are lowercased and gas resolves to fluid, so gas and fluid
// components share one bucket.
func (r ResourceType) Canonical() ResourceType {
	key := ResourceType(strings.ToLower(strings.TrimSpace(string(r))))
	if key == ResourceGas {
		return ResourceFluid
	}
	return key
}

// Is reports whether r and other resolve to the same canonical type.
func (r ResourceType) Is(other ResourceType) bool {
	return r.Canonical() == other.Canonical()
}

// Known reports whether r is one of the reserved resource types.
func (r ResourceType) Known() bool {
	switch r.Canonical() {
	case ResourceEnergy, ResourceItem, ResourceFluid:
		return true
	}
	return false
}

// CraftCheck is the outcome of checking or transferring a single
// requirement against a single component.
type CraftCheck int

const (
	// Success means the requirement is fully satisfied by the component.
	Success CraftCheck = iota
	// PartialSuccess means the component covered part of the requirement.
	PartialSuccess
	// FailureMissingInput means the component lacks the resource.
	FailureMissingInput
	// InvalidSkip means the component cannot serve this requirement at all.
	InvalidSkip
)

// String returns the outcome name used in traces and the journal.
func (c CraftCheck) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case PartialSuccess:
		return "PARTIAL_SUCCESS"
	case FailureMissingInput:
		return "FAILURE_MISSING_INPUT"
	case InvalidSkip:
		return "INVALID_SKIP"
	default:
		return fmt.Sprintf("CraftCheck(%d)", int(c))
	}
}
