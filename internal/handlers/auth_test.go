package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/utils"
)

func loginRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth", Login)
	return router
}

const loginSelect = `SELECT id, name, email, password, avatar FROM users WHERE email = $1`

func TestLoginSuccess(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(loginSelect)).
		WithArgs("a@x.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "password", "avatar"}).
				AddRow(101, "A", "a@x.com", hashed, "avatar-url"),
		)

	resp := postJSON(t, loginRouter(), "/api/auth", map[string]string{
		"email":    "A@x.com",
		"password": "secret1",
	})
	expectHTTP200(t, resp.Code)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func invalidCredentialsBody(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	var out struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Errors) != 1 || out.Errors[0].Msg != "Invalid credentials" {
		t.Fatalf("unexpected errors: %+v", out.Errors)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(loginSelect)).
		WithArgs("a@x.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "password", "avatar"}).
				AddRow(101, "A", "a@x.com", hashed, "avatar-url"),
		)

	resp := postJSON(t, loginRouter(), "/api/auth", map[string]string{
		"email":    "a@x.com",
		"password": "wrongpass",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)
	invalidCredentialsBody(t, resp)
}

func TestLoginUnknownEmail(t *testing.T) {
	// The message must be identical to the wrong-password case so accounts
	// cannot be enumerated.
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(loginSelect)).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	resp := postJSON(t, loginRouter(), "/api/auth", map[string]string{
		"email":    "ghost@x.com",
		"password": "secret1",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)
	invalidCredentialsBody(t, resp)
}

func TestCurrentUser(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, avatar, created_at FROM users WHERE id = $1`)).
		WithArgs(101).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "avatar", "created_at"}).
				AddRow(101, "A", "a@x.com", "avatar-url", created),
		)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/auth", withTestUserID(101), CurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out struct {
		User map[string]any `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.User["email"] != "a@x.com" {
		t.Fatalf("unexpected user: %+v", out.User)
	}
	if _, leaked := out.User["password"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
