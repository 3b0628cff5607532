package recipe

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/craftkit/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrRecipeIDEmpty     = "E201" // id is required
	ErrRecipeDuration    = "E202" // time_ticks must be positive
	ErrRecipeNoReqs      = "E203" // at least one requirement
	ErrUnknownResource   = "E204" // unknown resource type
	ErrInvalidDirection  = "E205" // io must be input, output or any
	ErrInvalidAmount     = "E206" // amount / per_tick must be positive
	ErrInvalidChance     = "E207" // chance must be within [0, 1]
	ErrMissingKey        = "E208" // item/fluid requirement without key
	ErrMisplacedField    = "E209" // field not valid for the resource type
	ErrDuplicateRecipeID = "E210" // recipe id registered twice
)

// ValidationError represents a recipe validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a definition and returns every problem found
// (does not fail-fast). An empty result means the definition is valid.
func Validate(d Definition) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(d.ID) == "" {
		errs = append(errs, ValidationError{Field: "id", Message: "id is required", Code: ErrRecipeIDEmpty})
	}
	if d.TimeTicks <= 0 {
		errs = append(errs, ValidationError{
			Field:   "time_ticks",
			Message: fmt.Sprintf("time_ticks must be positive, got %d", d.TimeTicks),
			Code:    ErrRecipeDuration,
		})
	}
	if len(d.Requirements) == 0 {
		errs = append(errs, ValidationError{Field: "requirements", Message: "at least one requirement is required", Code: ErrRecipeNoReqs})
	}

	for i, r := range d.Requirements {
		errs = append(errs, validateRequirement(fmt.Sprintf("requirements[%d]", i), r)...)
	}
	return errs
}

func validateRequirement(field string, r RequirementDefinition) []ValidationError {
	var errs []ValidationError

	rt := ir.ResourceType(r.Type)
	if !rt.Known() {
		errs = append(errs, ValidationError{
			Field:   field + ".type",
			Message: fmt.Sprintf("unknown resource type %q", r.Type),
			Code:    ErrUnknownResource,
		})
	}
	// Direction is required; "any" must be written out.
	if strings.TrimSpace(r.IO) == "" {
		errs = append(errs, ValidationError{Field: field + ".io", Message: "io is required (input, output or any)", Code: ErrInvalidDirection})
	} else if _, err := ir.ParseIOType(r.IO); err != nil {
		errs = append(errs, ValidationError{Field: field + ".io", Message: err.Error(), Code: ErrInvalidDirection})
	}

	if rt.Is(ir.ResourceEnergy) {
		if r.PerTick <= 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".per_tick",
				Message: "energy requirements need a positive per_tick",
				Code:    ErrInvalidAmount,
			})
		}
		if r.Key != "" || r.Amount != 0 || r.Chance != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "energy requirements take only per_tick",
				Code:    ErrMisplacedField,
			})
		}
		return errs
	}

	if strings.TrimSpace(r.Key) == "" {
		errs = append(errs, ValidationError{Field: field + ".key", Message: "key is required", Code: ErrMissingKey})
	}
	if r.Amount <= 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".amount",
			Message: fmt.Sprintf("amount must be positive, got %d", r.Amount),
			Code:    ErrInvalidAmount,
		})
	}
	if r.PerTick != 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".per_tick",
			Message: "per_tick is only valid for energy",
			Code:    ErrMisplacedField,
		})
	}
	if c := r.ChanceOrDefault(); math.IsNaN(c) || c < 0 || c > 1 {
		errs = append(errs, ValidationError{
			Field:   field + ".chance",
			Message: fmt.Sprintf("chance must be within [0, 1], got %s", ir.FormatFloat(c)),
			Code:    ErrInvalidChance,
		})
	}
	return errs
}
