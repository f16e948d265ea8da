package courseValidator

import (
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CreateContentRequest struct {
	LessonID uint   `json:"lessonId" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=text video audio picture"`
	URL      string `json:"url"`
	Text     string `json:"text"`
}

type UpdateContentRequest struct {
	ContentID uint   `json:"contentId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=text video audio picture"`
	URL       string `json:"url"`
	Text      string `json:"text"`
}

type DeleteContentRequest struct {
	ContentID uint `json:"contentId" validate:"required"`
}

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, contentFieldErrors(err))
		}

		// URL carries the media location for everything except text content
		if reqData.Type != courseModels.ContentText && strings.TrimSpace(reqData.URL) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"url": "URL is required for non-text content!",
			})
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, contentFieldErrors(err))
		}

		if reqData.Type != courseModels.ContentText && strings.TrimSpace(reqData.URL) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"url": "URL is required for non-text content!",
			})
		}

		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

func DeleteContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeleteContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, contentFieldErrors(err))
		}

		c.Locals("validatedContentDelete", reqData)
		return c.Next()
	}
}

// LessonIDQuery validates the ?lessonId= query parameter used by content
// listing.
func LessonIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonIDStr := strings.TrimSpace(c.Query("lessonId"))
		if lessonIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", uint(lessonID))
		return c.Next()
	}
}

func contentFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "LessonID":
			errors["lessonId"] = "Lesson ID is required!"
		case "ContentID":
			errors["contentId"] = "Content ID is required!"
		case "Type":
			errors["type"] = "Type must be one of text, video, audio or picture!"
		}
	}
	return errors
}
