package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"
	courseModels "chalkboard/models/course"
	courseValidator "chalkboard/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ownsLesson checks that a lesson belongs to a course owned by the caller.
// Every content write traverses content -> lesson -> course -> instructor.
func ownsLesson(lessonID, userID uint) bool {
	var count int64
	database.Database.Db.Table("lessons").
		Joins("JOIN courses ON courses.id = lessons.course_id").
		Where("lessons.id = ? AND lessons.is_deleted = ? AND courses.instructor_id = ? AND courses.is_deleted = ?",
			lessonID, false, userID, false).
		Count(&count)
	return count > 0
}

// GetLessonContents lists the contents of a lesson in a course owned by the
// caller.
func GetLessonContents(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	lessonID, ok := c.Locals("lessonID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
	}

	if !ownsLesson(lessonID, userId) {
		log.Printf("content list: lesson %d not reachable for user %d", lessonID, userId)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found or you don't have permission to view it", nil)
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

func CreateContent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*courseValidator.CreateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !ownsLesson(reqData.LessonID, userId) {
		log.Printf("content create: lesson %d not reachable for user %d", reqData.LessonID, userId)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found or you don't have permission to modify it", nil)
	}

	content := courseModels.Content{
		LessonID: reqData.LessonID,
		Type:     reqData.Type,
		URL:      reqData.URL,
		Text:     reqData.Text,
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		log.Printf("Error creating content in lesson %d: %v", reqData.LessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

func UpdateContent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedContentUpdate").(*courseValidator.UpdateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Content{}).
		Where(`id = ? AND is_deleted = ?
			AND lesson_id IN (
				SELECT lessons.id FROM lessons
				JOIN courses ON courses.id = lessons.course_id
				WHERE courses.instructor_id = ? AND courses.is_deleted = ? AND lessons.is_deleted = ?
			)`,
			reqData.ContentID, false, userId, false, false).
		Updates(map[string]interface{}{
			"type": reqData.Type,
			"url":  reqData.URL,
			"text": reqData.Text,
		})
	if result.Error != nil {
		log.Printf("Error updating content %d: %v", reqData.ContentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or you don't have permission to update it", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", nil)
}

func DeleteContent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedContentDelete").(*courseValidator.DeleteContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Content{}).
		Where(`id = ? AND is_deleted = ?
			AND lesson_id IN (
				SELECT lessons.id FROM lessons
				JOIN courses ON courses.id = lessons.course_id
				WHERE courses.instructor_id = ? AND courses.is_deleted = ? AND lessons.is_deleted = ?
			)`,
			reqData.ContentID, false, userId, false, false).
		Update("is_deleted", true)
	if result.Error != nil {
		log.Printf("Error deleting content %d: %v", reqData.ContentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found or you don't have permission to delete it", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}
