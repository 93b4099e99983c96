package instruction

import (
	"context"

	"gorm.io/gorm"

	"recipe-api/entities"
)

type (
	InstructionRepository interface {
		GetInstructions(ctx context.Context) ([]*entities.Instruction, error)
		GetInstructionByID(ctx context.Context, id uint) (*entities.Instruction, error)
	}

	instructionRepository struct {
		db *gorm.DB
	}
)

func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &instructionRepository{db: db}
}

func (r *instructionRepository) GetInstructions(ctx context.Context) ([]*entities.Instruction, error) {
	var instructions []*entities.Instruction
	if err := r.db.WithContext(ctx).
		Order("recipe_id ASC, step_number ASC").
		Find(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

func (r *instructionRepository) GetInstructionByID(ctx context.Context, id uint) (*entities.Instruction, error) {
	var instruction entities.Instruction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&instruction).Error; err != nil {
		return nil, err
	}
	return &instruction, nil
}
