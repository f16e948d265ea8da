package courseRoutes

import (
	controllers "chalkboard/controllers/course"
	"chalkboard/middleware"
	validators "chalkboard/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and student-facing routes
func SetupCourseRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Public catalog, no auth
	apiGroup.Get("/courses", controllers.GetCourses)
	apiGroup.Get("/courses/all", controllers.GetAllCourses)

	studentGroup := apiGroup.Group("/student", middleware.JWTMiddleware)

	// Enrollment lifecycle
	studentGroup.Get("/enrollments", controllers.GetEnrollments)
	studentGroup.Post("/enrollments/create", validators.Enroll(), controllers.EnrollInCourse)
	studentGroup.Post("/enrollments/withdraw", validators.EnrollmentAction(), controllers.WithdrawEnrollment)
	studentGroup.Post("/enrollments/complete", validators.EnrollmentAction(), controllers.CompleteEnrollment)

	// Lesson consumption (for enrolled students)
	studentGroup.Get("/course/lessons", validators.CourseIDQuery(), controllers.GetStudentCourseLessons)
	studentGroup.Get("/course/lesson/contents", validators.LessonIDQuery(), controllers.GetStudentLessonContents)
}
