package courseRoutes

import (
	controllers "chalkboard/controllers/course"
	"chalkboard/middleware"
	validators "chalkboard/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up all instructor-facing course routes
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/api/instructor", middleware.JWTMiddleware)

	// Course management
	instructorGroup.Get("/courses", controllers.GetInstructorCourses)
	instructorGroup.Post("/courses/create", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Post("/courses/update", validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Get("/course/enrollments", validators.CourseIDQuery(), controllers.GetCourseEnrollments)

	// Lesson management
	instructorGroup.Get("/course/lessons", validators.CourseIDQuery(), controllers.GetCourseLessons)
	instructorGroup.Post("/course/lessons/create", validators.CreateLesson(), controllers.CreateLesson)
	instructorGroup.Post("/course/lessons/update", validators.UpdateLesson(), controllers.UpdateLesson)
	instructorGroup.Post("/course/lessons/delete", validators.DeleteLesson(), controllers.DeleteLesson)

	// Content management
	instructorGroup.Get("/course/lesson/contents", validators.LessonIDQuery(), controllers.GetLessonContents)
	instructorGroup.Post("/course/lesson/content/create", validators.CreateContent(), controllers.CreateContent)
	instructorGroup.Post("/course/lesson/content/update", validators.UpdateContent(), controllers.UpdateContent)
	instructorGroup.Post("/course/lesson/content/delete", validators.DeleteContent(), controllers.DeleteContent)

	// Earnings
	instructorGroup.Get("/earnings", validators.EarningsQuery(), controllers.GetEarnings)
	instructorGroup.Get("/earnings/export", validators.EarningsQuery(), controllers.ExportEarnings)
}
