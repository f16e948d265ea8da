package courseValidator

import (
	"chalkboard/middleware"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

type EnrollmentActionRequest struct {
	EnrollmentID uint `json:"enrollmentId" validate:"required"`
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"courseId": "Course ID is required!",
			})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// EnrollmentAction validates withdraw and complete payloads, which both key
// on the enrollment ID.
func EnrollmentAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentActionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"enrollmentId": "Enrollment ID is required!",
			})
		}

		c.Locals("validatedEnrollmentAction", reqData)
		return c.Next()
	}
}

// EarningsQuery validates the optional timeframe and grouping parameters on
// the instructor earnings endpoints.
func EarningsQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		timeframe := c.Query("timeframe", "all")
		switch timeframe {
		case "1m", "6m", "1y", "all":
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Timeframe must be one of 1m, 6m, 1y or all!", nil)
		}

		groupBy := c.Query("groupBy", "")
		if groupBy != "" && groupBy != "date" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "groupBy only supports date!", nil)
		}

		c.Locals("earningsTimeframe", timeframe)
		c.Locals("earningsGroupBy", groupBy)
		return c.Next()
	}
}
