package engagement

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/dto"
	"github.com/modxnet/modxnet-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type submitCommentRequest struct {
	Text string `json:"text"`
}

type generateRequest struct {
	GameName     string `json:"gameName"`
	ReviewCount  int    `json:"reviewCount"`
	CommentCount int    `json:"commentCount"`
}

// ListReviews handles GET /api/reviews/:slug. The body is a bare array.
func (h *Handler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if reviews == nil {
		reviews = []ReviewView{}
	}
	return c.JSON(reviews)
}

// SubmitReview handles POST /api/reviews/:slug
func (h *Handler) SubmitReview(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req submitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	reviews, err := h.service.SubmitReview(c.UserContext(), userID, c.Params("slug"), req.Rating, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "reviews": reviews})
}

// ListComments handles GET /api/comments/:slug
func (h *Handler) ListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	if comments == nil {
		comments = []CommentView{}
	}
	return c.JSON(comments)
}

// SubmitComment handles POST /api/comments/:slug
func (h *Handler) SubmitComment(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req submitCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	comments, err := h.service.SubmitComment(c.UserContext(), userID, c.Params("slug"), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "comments": comments})
}

// AdminListReviews handles GET /api/admin/reviews
func (h *Handler) AdminListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListAllReviews(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": reviews, "total": len(reviews)})
}

// AdminDeleteReview handles DELETE /api/admin/reviews/:id
func (h *Handler) AdminDeleteReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid review ID"})
	}
	if err := h.service.DeleteReview(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AdminListComments handles GET /api/admin/comments
func (h *Handler) AdminListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListAllComments(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": comments, "total": len(comments)})
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
func (h *Handler) AdminDeleteComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid comment ID"})
	}
	if err := h.service.DeleteComment(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GenerateEngagement handles POST /api/admin/games/:slug/generate-engagement
func (h *Handler) GenerateEngagement(c *fiber.Ctx) error {
	var req generateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
		}
	}

	result, err := h.service.GenerateSynthetic(c.UserContext(), GenerateRequest{
		GameSlug:     c.Params("slug"),
		GameName:     req.GameName,
		ReviewCount:  req.ReviewCount,
		CommentCount: req.CommentCount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Sweep handles POST /api/admin/engagement/sweep
func (h *Handler) Sweep(c *fiber.Ctx) error {
	result, err := h.service.SweepExpired(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "reviews_deleted": result.Reviews, "comments_deleted": result.Comments})
}

func respondError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: verr.Message})
	case errors.Is(err, ErrAlreadyReviewed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: "You already reviewed this game"})
	case errors.Is(err, ErrReviewNotFound), errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrGameNotFound):
		msg := err.Error()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: strings.ToUpper(msg[:1]) + msg[1:]})
	default:
		slog.Error("engagement request failed", "component", "engagement", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
}
