package controllers_test

import (
	"bytes"
	"chalkboard/config"
	"chalkboard/database"
	adminRoutes "chalkboard/routers/adminRoutes"
	authRoutes "chalkboard/routers/authRoutes"
	courseRoutes "chalkboard/routers/courseRoutes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp builds the full route surface against a fresh in-memory
// database, one per test.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.AdminKey = "test-admin-key"
	config.AppConfig.SaltRound = 4 // keep bcrypt cheap in tests

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "text/csv" {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp, env
}

func doRawRequest(t *testing.T, app *fiber.App, method, path string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// registerAndLogin creates an account and returns its token and user ID.
func registerAndLogin(t *testing.T, app *fiber.App, name, email string) (string, uint) {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"fullName": name,
		"email":    email,
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    email,
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"ID"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}

// createCourse publishes a course as the given instructor and returns its ID.
func createCourse(t *testing.T, app *fiber.App, token, name string, price float64) uint {
	t.Helper()

	resp, env := doRequest(t, app, http.MethodPost, "/api/instructor/courses/create", token, fiber.Map{
		"name":        name,
		"description": "a test course",
		"details":     "longer details",
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

// enroll enrolls the student in the course and returns the enrollment ID.
func enroll(t *testing.T, app *fiber.App, token string, courseID uint) uint {
	t.Helper()

	resp, env := doRequest(t, app, http.MethodPost, "/api/student/enrollments/create", token, fiber.Map{
		"courseId": courseID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "message: %s", env.Message)

	var data struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

func itoa(v uint) string {
	return fmt.Sprintf("%d", v)
}
