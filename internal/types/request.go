package types

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// EvaluationRequest carries one scoring call's input: the target glyph, the
// user's raw stroke trajectories, and an optional posture sample.
type EvaluationRequest struct {
	Character   string         `json:"character" validate:"required"`
	UserStrokes []Stroke       `json:"user_strokes" validate:"required,min=1"`
	Posture     *PostureSample `json:"posture,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
}

// Validate validates the EvaluationRequest using the validator.
// Character must be exactly one glyph and every stroke must be non-empty.
func (r *EvaluationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Character) != 1 {
		return fmt.Errorf("character must be a single glyph, got %q", r.Character)
	}
	for i, stroke := range r.UserStrokes {
		if len(stroke) == 0 {
			return fmt.Errorf("user stroke %d is empty", i)
		}
	}
	return nil
}
