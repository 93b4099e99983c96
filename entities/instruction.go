package entities

type Instruction struct {
	ID              uint   `gorm:"primaryKey" json:"instruction_id"`
	RecipeID        uint   `gorm:"not null;uniqueIndex:idx_instructions_recipe_step" json:"recipe_id"`
	StepNumber      int    `gorm:"not null;uniqueIndex:idx_instructions_recipe_step;check:step_number > 0" json:"step_number"`
	InstructionText string `gorm:"type:text;not null" json:"instruction_text"`
}
