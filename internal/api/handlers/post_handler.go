package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/n23dcpt085-cyber/social-media-website/internal/models"
	"github.com/n23dcpt085-cyber/social-media-website/internal/queue"
	"github.com/n23dcpt085-cyber/social-media-website/internal/service"
	"github.com/n23dcpt085-cyber/social-media-website/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, AsynqClient: asynqClient}
}

func platformParam(c *fiber.Ctx) (string, bool) {
	platform := c.Params("platform")
	switch platform {
	case models.PlatformFacebook, models.PlatformInstagram, models.PlatformTiktok:
		return platform, true
	}
	return platform, false
}

// CreatePost publishes synchronously by default and returns the reconciled
// record. With ?mode=async the record is persisted queued and published by a
// worker; the response is the queued record.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	platform, ok := platformParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unsupported platform: " + platform,
		})
	}

	var pc transfer.PostCreation
	if err := c.BodyParser(&pc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := pc.Validate(platform); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.Query("mode") == "async" {
		post, err := h.s.CreateQueued(c.Context(), userID, platform, &pc)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		err = queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID, UserID: userID})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error enqueueing post",
			})
		}

		return c.Status(fiber.StatusAccepted).JSON(post)
	}

	post, err := h.s.Upload(c.Context(), userID, platform, &pc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	platform, ok := platformParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unsupported platform: " + platform,
		})
	}

	posts, err := h.s.List(c.Context(), userID, platform)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid post id",
		})
	}

	post, err := h.s.PostInfo(c.Context(), int64(postID), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(post)
}
