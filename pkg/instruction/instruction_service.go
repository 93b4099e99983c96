package instruction

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/entities"
)

type (
	InstructionService interface {
		GetInstructions(ctx context.Context) ([]domain.InstructionResponse, error)
		GetInstruction(ctx context.Context, id uint) (domain.InstructionResponse, error)
	}

	instructionService struct {
		instructionRepository InstructionRepository
	}
)

func NewInstructionService(instructionRepository InstructionRepository) InstructionService {
	return &instructionService{instructionRepository: instructionRepository}
}

func ToInstructionResponse(i *entities.Instruction) domain.InstructionResponse {
	return domain.InstructionResponse{
		InstructionID:   i.ID,
		RecipeID:        i.RecipeID,
		StepNumber:      i.StepNumber,
		InstructionText: i.InstructionText,
	}
}

func ToInstructionResponses(instructions []*entities.Instruction) []domain.InstructionResponse {
	res := make([]domain.InstructionResponse, 0, len(instructions))
	for _, i := range instructions {
		res = append(res, ToInstructionResponse(i))
	}
	return res
}

func (s *instructionService) GetInstructions(ctx context.Context) ([]domain.InstructionResponse, error) {
	instructions, err := s.instructionRepository.GetInstructions(ctx)
	if err != nil {
		return nil, err
	}
	return ToInstructionResponses(instructions), nil
}

func (s *instructionService) GetInstruction(ctx context.Context, id uint) (domain.InstructionResponse, error) {
	instruction, err := s.instructionRepository.GetInstructionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InstructionResponse{}, domain.ErrInstructionNotFound
		}
		return domain.InstructionResponse{}, err
	}
	return ToInstructionResponse(instruction), nil
}
