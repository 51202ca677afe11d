package controller

import (
	"corp-learning-be/internal/dto"
	"corp-learning-be/internal/pkg/serverutils"
	"corp-learning-be/internal/service"
	"corp-learning-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

type IEmbeddingController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
}

type embeddingController struct {
	indexer service.IIndexerService
}

func NewEmbeddingController(indexer service.IIndexerService) IEmbeddingController {
	return &embeddingController{indexer: indexer}
}

func (c *embeddingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/embeddings")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Get("/status", c.GetStatus)
}

// Generate triggers (re)indexing. A single content item is queued for the
// background worker; a whole category is rebuilt synchronously.
func (c *embeddingController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateEmbeddingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if req.ContentId != nil {
		if req.ContentType != rag.ContentTypeLearningContent {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "content_id is only supported for learning_content"))
		}
		if err := c.indexer.RequestIndex(ctx.Context(), *req.ContentId, service.IndexActionUpsert); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Indexing queued", nil))
	}

	documents, err := c.indexer.Rebuild(ctx.Context(), req.ContentType)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Embeddings generated", dto.GenerateEmbeddingsResponse{
		ContentType: req.ContentType,
		Documents:   documents,
	}))
}

func (c *embeddingController) GetStatus(ctx *fiber.Ctx) error {
	res, err := c.indexer.Status(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Embedding index status", res))
}
