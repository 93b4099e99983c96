package domain

import "fmt"

var (
	MessageSuccessGetInstructions = "success get instructions"
	MessageSuccessGetInstruction  = "success get instruction"

	MessageFailedGetInstructions = "failed to get instructions"
	MessageFailedGetInstruction  = "failed to get instruction"

	ErrInstructionNotFound = fmt.Errorf("instruction %w", ErrNotFound)
)

type InstructionResponse struct {
	InstructionID   uint   `json:"instruction_id"`
	RecipeID        uint   `json:"recipe_id"`
	StepNumber      int    `json:"step_number"`
	InstructionText string `json:"instruction_text"`
}
