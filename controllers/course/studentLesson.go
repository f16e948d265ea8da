package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// isEnrolled reports whether the student has an active or completed
// enrollment in the course. Withdrawn students lose lesson access.
func isEnrolled(courseID, studentID uint) bool {
	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND student_id = ? AND status IN ? AND is_deleted = ?",
			courseID, studentID,
			[]string{courseModels.EnrollmentActive, courseModels.EnrollmentCompleted}, false).
		Count(&count)
	return count > 0
}

// GetStudentCourseLessons lists the lessons of a course the caller is
// enrolled in, ordered by lesson number.
func GetStudentCourseLessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	if !isEnrolled(courseID, userID) {
		log.Printf("lesson view: user %d is not enrolled in course %d", userID, courseID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or you are not enrolled", nil)
	}

	var lessons []courseModels.Lesson
	err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("number asc").
		Find(&lessons).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

// GetStudentLessonContents lists the contents of a lesson in a course the
// caller is enrolled in.
func GetStudentLessonContents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	lessonID, ok := c.Locals("lessonID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", lessonID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found", nil)
	}

	if !isEnrolled(lesson.CourseID, userID) {
		log.Printf("content view: user %d is not enrolled in course %d", userID, lesson.CourseID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found or you are not enrolled", nil)
	}

	var contents []courseModels.Content
	if err := database.Database.Db.
		Where("lesson_id = ? AND is_deleted = ?", lessonID, false).
		Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", fiber.Map{
		"contents": contents,
	})
}
