package courseValidator

import (
	"chalkboard/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CreateLessonRequest struct {
	CourseID    uint   `json:"courseId" validate:"required"`
	Number      int    `json:"number" validate:"required,gte=1"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
}

type UpdateLessonRequest struct {
	CourseID    uint   `json:"courseId" validate:"required"`
	LessonID    uint   `json:"lessonId" validate:"required"`
	Number      int    `json:"number" validate:"required,gte=1"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
}

type DeleteLessonRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
	LessonID uint `json:"lessonId" validate:"required"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, lessonFieldErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, lessonFieldErrors(err))
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func DeleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeleteLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, lessonFieldErrors(err))
		}

		c.Locals("validatedLessonDelete", reqData)
		return c.Next()
	}
}

// CourseIDQuery validates the ?courseId= query parameter used by lesson
// listing on both the student and instructor sides.
func CourseIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Query("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

func lessonFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "CourseID":
			errors["courseId"] = "Course ID is required!"
		case "LessonID":
			errors["lessonId"] = "Lesson ID is required!"
		case "Number":
			errors["number"] = "Lesson number must be at least 1!"
		case "Title":
			errors["title"] = "Title must be at least 3 characters long!"
		case "Description":
			errors["description"] = "Description is required!"
		}
	}
	return errors
}
