package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	courseValidator "chalkboard/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetCourseLessons lists the lessons of a course owned by the caller,
// ordered by lesson number.
func GetCourseLessons(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	var lessons []courseModels.Lesson
	err := database.Database.Db.
		Joins("JOIN courses ON courses.id = lessons.course_id").
		Where("courses.id = ? AND courses.instructor_id = ? AND lessons.is_deleted = ?", courseID, userId, false).
		Order("lessons.number asc").
		Find(&lessons).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

func CreateLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Creation requires explicit ownership of the target course
	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND instructor_id = ? AND is_deleted = ?", reqData.CourseID, userId, false).
		First(&course).Error; err != nil {
		logOwnershipMiss("lesson create", reqData.CourseID, userId)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or you don't have permission to modify it", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:    reqData.CourseID,
		Number:      reqData.Number,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson in course %d: %v", reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson is keyed by the (lesson, course, instructor) triple so a
// lesson can never be edited through someone else's course.
func UpdateLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*courseValidator.UpdateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Lesson{}).
		Where(`id = ? AND course_id = ? AND is_deleted = ?
			AND course_id IN (SELECT id FROM courses WHERE instructor_id = ? AND is_deleted = ?)`,
			reqData.LessonID, reqData.CourseID, false, userId, false).
		Updates(map[string]interface{}{
			"number":      reqData.Number,
			"title":       reqData.Title,
			"description": reqData.Description,
		})
	if result.Error != nil {
		log.Printf("Error updating lesson %d: %v", reqData.LessonID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found or you don't have permission to update it", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", nil)
}

func DeleteLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLessonDelete").(*courseValidator.DeleteLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Lesson{}).
		Where(`id = ? AND course_id = ? AND is_deleted = ?
			AND course_id IN (SELECT id FROM courses WHERE instructor_id = ? AND is_deleted = ?)`,
			reqData.LessonID, reqData.CourseID, false, userId, false).
		Update("is_deleted", true)
	if result.Error != nil {
		log.Printf("Error deleting lesson %d: %v", reqData.LessonID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found or you don't have permission to delete it", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
