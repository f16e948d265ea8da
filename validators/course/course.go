package courseValidator

import (
	"chalkboard/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=5"`
	Details     string  `json:"details"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type UpdateCourseRequest struct {
	CourseID    uint    `json:"courseId" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3"`
	Description string  `json:"description" validate:"required,min=5"`
	Details     string  `json:"details"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, courseFieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, courseFieldErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func courseFieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "CourseID":
			errors["courseId"] = "Course ID is required!"
		case "Name":
			errors["name"] = "Name must be at least 3 characters long!"
		case "Description":
			errors["description"] = "Description must be at least 5 characters long!"
		case "Price":
			errors["price"] = "Price must not be negative!"
		}
	}
	return errors
}
