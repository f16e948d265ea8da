package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"

	"github.com/gofiber/fiber/v2"
)

// PublicCourse is a catalog row joined with the instructor's display name.
// No pagination or server-side filtering; the browsing client filters in
// memory.
type PublicCourse struct {
	CourseID          uint    `json:"course_id"`
	CourseName        string  `json:"course_name"`
	CourseDescription string  `json:"course_description"`
	CourseDetails     string  `json:"course_details"`
	CoursePrice       float64 `json:"course_price"`
	InstructorID      uint    `json:"instructor_id"`
	InstructorName    string  `json:"instructor_name"`
}

func listCatalog() ([]PublicCourse, error) {
	var courses []PublicCourse
	err := database.Database.Db.Table("courses").
		Select(`courses.id AS course_id,
			courses.name AS course_name,
			courses.description AS course_description,
			courses.details AS course_details,
			courses.price AS course_price,
			courses.instructor_id,
			users.full_name AS instructor_name`).
		Joins("JOIN users ON users.id = courses.instructor_id").
		Where("courses.is_deleted = ?", false).
		Order("courses.created_at desc").
		Scan(&courses).Error
	return courses, err
}

// GetCourses lists the public catalog for browsing.
func GetCourses(c *fiber.Ctx) error {
	courses, err := listCatalog()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetAllCourses is the detailed catalog listing, price and details included.
// Kept as a separate route for compatibility with the browsing client.
func GetAllCourses(c *fiber.Ctx) error {
	return GetCourses(c)
}
