package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "tasklist-web.com/tasklist-web/internal/models"
	repository "tasklist-web.com/tasklist-web/internal/repositories"
	"tasklist-web.com/tasklist-web/internal/services"
	"tasklist-web.com/tasklist-web/internal/session"
)

type testApp struct {
	e     *echo.Echo
	db    *gorm.DB
	tasks *services.TaskService
	auth  *services.AuthService
}

func setupApp(t *testing.T) *testApp {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Task{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	taskService := services.NewTaskService(repository.NewTaskRepository(db))
	authService := services.NewAuthService(repository.NewUserRepository(db))
	sessions := session.NewMemoryStore(time.Hour)

	e := echo.New()
	renderer, err := NewTemplateRenderer("../../web/templates")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	handler := NewHandler(taskService, authService, sessions, time.Hour, false)
	Register(e, handler, 1000)

	return &testApp{e: e, db: db, tasks: taskService, auth: authService}
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func TestAddTaskRedirectsToList(t *testing.T) {
	app := setupApp(t)

	rec := app.postForm("/ajouter", url.Values{
		"titre":       {"Courses"},
		"description": {"Acheter du pain"},
		"date":        {"2024-01-01"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/taches" {
		t.Errorf("expected redirect to /taches, got %q", loc)
	}

	tasks, _ := app.tasks.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].Title != "Courses" {
		t.Errorf("task not created: %+v", tasks)
	}
}

func TestAddTaskMalformedDateRedirectsBack(t *testing.T) {
	app := setupApp(t)

	rec := app.postForm("/ajouter", url.Values{
		"titre":       {"Courses"},
		"description": {"Acheter du pain"},
		"date":        {"01/01/2024"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/ajouter" {
		t.Errorf("expected redirect back to /ajouter, got %q", loc)
	}

	tasks, _ := app.tasks.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("expected no task created, got %d", len(tasks))
	}
}

func TestEditMissingTaskReturns404(t *testing.T) {
	app := setupApp(t)

	if rec := app.get("/modifier/5"); rec.Code != http.StatusNotFound {
		t.Errorf("GET: expected status 404, got %d", rec.Code)
	}

	rec := app.postForm("/modifier/5", url.Values{
		"titre":       {"Title"},
		"description": {"Desc"},
		"date":        {"2024-01-01"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST: expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	task, err := app.tasks.CreateTask(ctx, "Title", "Desc", "2024-01-01")
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	rec := app.postForm("/supprimer/1", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}

	tasks, _ := app.tasks.ListTasks(ctx)
	for _, remaining := range tasks {
		if remaining.ID == task.ID {
			t.Errorf("task still present after delete")
		}
	}

	if rec := app.postForm("/supprimer/1", nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for missing task, got %d", rec.Code)
	}
}

func TestLoginFailureShowsGenericMessage(t *testing.T) {
	app := setupApp(t)

	if _, err := app.auth.Register(context.Background(), "alice", "secret123", "secret123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	wrongPassword := app.postForm("/login", url.Values{
		"nom_utilisateur": {"alice"},
		"mot_de_passe":    {"wrong"},
	})
	unknownUser := app.postForm("/login", url.Values{
		"nom_utilisateur": {"nobody"},
		"mot_de_passe":    {"whatever"},
	})

	for name, rec := range map[string]*httptest.ResponseRecorder{
		"wrong password": wrongPassword,
		"unknown user":   unknownUser,
	} {
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected the login form again (200), got %d", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "username or password incorrect") {
			t.Errorf("%s: failure message missing from response", name)
		}
	}
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	app := setupApp(t)

	if _, err := app.auth.Register(context.Background(), "alice", "secret123", "secret123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	rec := app.postForm("/login", url.Values{
		"nom_utilisateur": {"alice"},
		"mot_de_passe":    {"secret123"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" && cookie.Value != "" {
			found = true
			if !cookie.HttpOnly {
				t.Error("session cookie should be httpOnly")
			}
		}
	}
	if !found {
		t.Error("session cookie not set on successful login")
	}
}

func TestRegisterMismatchRedirectsBack(t *testing.T) {
	app := setupApp(t)

	rec := app.postForm("/register", url.Values{
		"nom_utilisateur":        {"bob"},
		"mot_de_passe":           {"one"},
		"confirmer_mot_de_passe": {"two"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/register" {
		t.Errorf("expected redirect back to /register, got %q", loc)
	}

	var count int64
	app.db.Model(&model.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no users created, got %d", count)
	}
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	app := setupApp(t)

	rec := app.postForm("/register", url.Values{
		"nom_utilisateur":        {"alice"},
		"mot_de_passe":           {"secret123"},
		"confirmer_mot_de_passe": {"secret123"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}
