package handlers

import (
	"github.com/gofiber/fiber/v2"

	"recipe-api/domain"
	"recipe-api/internal/api/presenters"
	"recipe-api/pkg/instruction"
)

type (
	InstructionHandler interface {
		GetInstructions(c *fiber.Ctx) error
		GetInstruction(c *fiber.Ctx) error
	}

	instructionHandler struct {
		instructionService instruction.InstructionService
	}
)

func NewInstructionHandler(instructionService instruction.InstructionService) InstructionHandler {
	return &instructionHandler{instructionService: instructionService}
}

func (h *instructionHandler) GetInstructions(c *fiber.Ctx) error {
	res, err := h.instructionService.GetInstructions(c.UserContext())
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetInstructions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInstructions)
}

func (h *instructionHandler) GetInstruction(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInstruction, err)
	}

	res, err := h.instructionService.GetInstruction(c.UserContext(), id)
	if err != nil {
		return presenters.ServiceError(c, domain.MessageFailedGetInstruction, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInstruction)
}
