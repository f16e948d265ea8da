package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	courseValidator "chalkboard/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// InstructorCourse is a course row annotated with its active student count.
type InstructorCourse struct {
	CourseID          uint    `json:"course_id"`
	CourseName        string  `json:"course_name"`
	CourseDescription string  `json:"course_description"`
	CourseDetails     string  `json:"course_details"`
	CoursePrice       float64 `json:"course_price"`
	TotalStudents     int64   `json:"total_students"`
}

// GetInstructorCourses lists the caller's courses with active enrollment
// counts.
func GetInstructorCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	var courses []InstructorCourse
	err := database.Database.Db.Table("courses").
		Select(`courses.id AS course_id,
			courses.name AS course_name,
			courses.description AS course_description,
			courses.details AS course_details,
			courses.price AS course_price,
			COUNT(CASE WHEN enrollments.status = 'active' THEN 1 END) AS total_students`).
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id AND enrollments.is_deleted = ?", false).
		Where("courses.instructor_id = ? AND courses.is_deleted = ?", userId, false).
		Group("courses.id").
		Scan(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		InstructorID: userId,
		Name:         reqData.Name,
		Description:  reqData.Description,
		Details:      reqData.Details,
		Price:        reqData.Price,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course for instructor %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse mutates a course through a single conditional UPDATE carrying
// the ownership clause. Zero affected rows means the course either does not
// exist or belongs to someone else; the caller cannot tell which.
func UpdateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Course{}).
		Where("id = ? AND instructor_id = ? AND is_deleted = ?", reqData.CourseID, userId, false).
		Updates(map[string]interface{}{
			"name":        reqData.Name,
			"description": reqData.Description,
			"details":     reqData.Details,
			"price":       reqData.Price,
		})
	if result.Error != nil {
		log.Printf("Error updating course %d: %v", reqData.CourseID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if result.RowsAffected == 0 {
		logOwnershipMiss("course update", reqData.CourseID, userId)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or you don't have permission to update it", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", nil)
}

// GetCourseEnrollments lists the active students of one of the caller's
// courses.
func GetCourseEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	type enrolledStudent struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}

	var students []enrolledStudent
	err := database.Database.Db.Table("users").
		Select("users.full_name, users.email").
		Joins("JOIN enrollments ON enrollments.student_id = users.id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.id = ? AND courses.instructor_id = ? AND enrollments.status = ?",
			courseID, userId, courseModels.EnrollmentActive).
		Scan(&students).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"students": students,
	})
}

// logOwnershipMiss records, server-side only, whether an ownership failure
// was a missing row or someone else's row. Externally both are a 404.
func logOwnershipMiss(op string, courseID, userID uint) {
	var count int64
	database.Database.Db.Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Count(&count)
	if count == 0 {
		log.Printf("%s: course %d does not exist (user %d)", op, courseID, userID)
	} else {
		log.Printf("%s: course %d not owned by user %d", op, courseID, userID)
	}
}
