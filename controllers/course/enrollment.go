package controllers

import (
	"chalkboard/database"
	"chalkboard/middleware"
	"chalkboard/models"
	courseModels "chalkboard/models/course"
	"chalkboard/utils"
	courseValidator "chalkboard/validators/course"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollInCourse creates an active enrollment. For a paid course the Sale
// row is written in the same transaction, so the ledger can never disagree
// with the enrollment table. The partial unique index on active enrollments
// closes the check-then-act window under concurrent requests.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*courseValidator.EnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.InstructorID == userID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructors cannot enroll in their own courses", nil)
	}

	// Fast path rejection; the unique index is the real guard
	var existing courseModels.Enrollment
	err := database.Database.Db.
		Where("course_id = ? AND student_id = ? AND status = ? AND is_deleted = ?",
			course.ID, userID, courseModels.EnrollmentActive, false).
		First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course", nil)
	}

	enrollment := courseModels.Enrollment{
		CourseID:       course.ID,
		StudentID:      userID,
		Status:         courseModels.EnrollmentActive,
		EnrollmentDate: time.Now().Unix(),
	}

	var sale *courseModels.Sale

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		if course.Price > 0 {
			sale = &courseModels.Sale{
				Reference:    uuid.NewString(),
				StudentID:    userID,
				InstructorID: course.InstructorID,
				CourseID:     course.ID,
				EnrollmentID: enrollment.ID,
				SaleDate:     enrollment.EnrollmentDate,
				SalePrice:    course.Price,
			}
			if err := tx.Create(sale).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		if isDuplicateEnrollment(txErr) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course", nil)
		}
		log.Printf("Error enrolling user %d in course %d: %v", userID, course.ID, txErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	if sale != nil {
		// Side effects after commit; failures are logged, never surfaced
		go func(s courseModels.Sale, student models.User, crs courseModels.Course) {
			if err := utils.NotifyPaymentGateway(s); err != nil {
				log.Printf("Error notifying payment gateway for sale %s: %v", s.Reference, err)
			}
			if err := utils.SendEnrollmentEmail(student.Email, student.FullName, crs.Name, s.SalePrice); err != nil {
				log.Printf("Error sending enrollment email to %s: %v", student.Email, err)
			}
		}(*sale, user, course)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment created successfully", enrollment)
}

func isDuplicateEnrollment(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "uq_active_enrollment") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// WithdrawEnrollment flips an active enrollment to withdrawn. The ownership
// guard lives in the UPDATE itself; withdrawal is irreversible through this
// API and never touches the Sale ledger.
func WithdrawEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentAction").(*courseValidator.EnrollmentActionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND student_id = ? AND status = ? AND is_deleted = ?",
			reqData.EnrollmentID, userID, courseModels.EnrollmentActive, false).
		Update("status", courseModels.EnrollmentWithdrawn)
	if result.Error != nil {
		log.Printf("Error withdrawing enrollment %d: %v", reqData.EnrollmentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to withdraw enrollment!", nil)
	}

	if result.RowsAffected == 0 {
		logEnrollmentMiss("withdraw", reqData.EnrollmentID, userID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found or not authorized", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment withdrawn successfully", nil)
}

// CompleteEnrollment marks an active enrollment completed.
func CompleteEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentAction").(*courseValidator.EnrollmentActionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	now := time.Now()
	result := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND student_id = ? AND status = ? AND is_deleted = ?",
			reqData.EnrollmentID, userID, courseModels.EnrollmentActive, false).
		Updates(map[string]interface{}{
			"status":       courseModels.EnrollmentCompleted,
			"completed_at": &now,
		})
	if result.Error != nil {
		log.Printf("Error completing enrollment %d: %v", reqData.EnrollmentID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete enrollment!", nil)
	}

	if result.RowsAffected == 0 {
		logEnrollmentMiss("complete", reqData.EnrollmentID, userID)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found or not authorized", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment completed successfully", nil)
}

// StudentEnrollment is an enrollment row joined with its course and the
// instructor's display name. The client partitions these into enrolled and
// past views by status.
type StudentEnrollment struct {
	EnrollmentID      uint    `json:"enrollment_id"`
	EnrollmentStatus  string  `json:"enrollment_status"`
	EnrollmentDate    int64   `json:"enrollment_date"`
	CourseID          uint    `json:"course_id"`
	CourseName        string  `json:"course_name"`
	CourseDescription string  `json:"course_description"`
	CourseDetails     string  `json:"course_details"`
	CoursePrice       float64 `json:"course_price"`
	InstructorName    string  `json:"instructor_name"`
}

func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized!", nil)
	}

	var enrollments []StudentEnrollment
	err := database.Database.Db.Table("enrollments").
		Select(`enrollments.id AS enrollment_id,
			enrollments.status AS enrollment_status,
			enrollments.enrollment_date,
			courses.id AS course_id,
			courses.name AS course_name,
			courses.description AS course_description,
			courses.details AS course_details,
			courses.price AS course_price,
			users.full_name AS instructor_name`).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Where("enrollments.student_id = ? AND enrollments.is_deleted = ?", userID, false).
		Order("enrollments.enrollment_date desc").
		Scan(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

func logEnrollmentMiss(op string, enrollmentID, userID uint) {
	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND is_deleted = ?", enrollmentID, false).
		Count(&count)
	if count == 0 {
		log.Printf("%s: enrollment %d does not exist (user %d)", op, enrollmentID, userID)
	} else {
		log.Printf("%s: enrollment %d not owned by user %d or not active", op, enrollmentID, userID)
	}
}
