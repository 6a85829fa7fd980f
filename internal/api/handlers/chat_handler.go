package handlers

import (
	"strings"

	"github.com/ChaandiniV/PeriCareAIBot/internal/dto"
	"github.com/ChaandiniV/PeriCareAIBot/internal/knowledge"
	"github.com/ChaandiniV/PeriCareAIBot/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	store       *knowledge.Store
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, store *knowledge.Store, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		store:       store,
		logger:      logger,
	}
}

// Ask answers one natural-language question.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	response, metadata := h.chatService.Answer(c.Context(), question)

	return c.JSON(dto.AskResponse{
		Response: response,
		Metadata: metadata,
	})
}

// Suggestions returns starter questions for the UI.
func (h *ChatHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(dto.SuggestionsResponse{
		Questions: service.SuggestedQuestions(),
	})
}

// Emergency returns the emergency-information block.
func (h *ChatHandler) Emergency(c *fiber.Ctx) error {
	return c.JSON(dto.EmergencyResponse{
		Info: service.EmergencyInfo(),
	})
}

// Categories lists the distinct record categories.
func (h *ChatHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{
		Categories: h.store.Categories(),
	})
}

// CategoryQuestions lists the stored questions for one category.
func (h *ChatHandler) CategoryQuestions(c *fiber.Ctx) error {
	name := c.Params("name")
	records := h.store.QuestionsByCategory(name)
	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown category",
		})
	}

	questions := make([]string, 0, len(records))
	for _, rec := range records {
		questions = append(questions, rec.Question)
	}

	return c.JSON(dto.CategoryQuestionsResponse{
		Category:  records[0].Category,
		Questions: questions,
	})
}
