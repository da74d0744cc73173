package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func educationRouter(userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("", withTestUserID(userID))
	authed.PUT("/api/profile/education", AddEducation)
	authed.DELETE("/api/profile/education/:edu_id", DeleteEducation)
	return router
}

func TestAddEducation(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(profileIDQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	mock.ExpectExec("INSERT INTO profile_education").
		WithArgs(sqlmock.AnyArg(), 5, "MIT", "BSc", "CS", sqlmock.AnyArg(), nil, true, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entryID := uuid.NewString()
	from := time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(joinedProfileQuery).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(profileRow(5, 101, "dev", "{js}", "A")...))
	mock.ExpectQuery("FROM profile_experience").
		WillReturnRows(sqlmock.NewRows(experienceColumns))
	mock.ExpectQuery("FROM profile_education").
		WillReturnRows(
			sqlmock.NewRows(educationColumns).
				AddRow(entryID, "MIT", "BSc", "CS", from, nil, true, nil),
		)

	resp := putJSON(t, educationRouter(101), "/api/profile/education", map[string]any{
		"school":       "MIT",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2019-09-01",
		"current":      true,
	})
	expectHTTP200(t, resp.Code)

	var out struct {
		Profile struct {
			Education []struct {
				School string `json:"school"`
			} `json:"education"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Profile.Education) != 1 || out.Profile.Education[0].School != "MIT" {
		t.Fatalf("unexpected education list: %+v", out.Profile.Education)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAddEducationValidation(t *testing.T) {
	_, _, cleanup := setupMockDB(t)
	defer cleanup()

	resp := putJSON(t, educationRouter(101), "/api/profile/education", map[string]any{
		"school": "MIT",
		"from":   "2019-09-01",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)
}

func TestDeleteEducationNotFound(t *testing.T) {
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	entryID := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(profileIDQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec("DELETE FROM profile_education").
		WithArgs(entryID, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/api/profile/education/"+entryID, nil)
	resp := httptest.NewRecorder()
	educationRouter(101).ServeHTTP(resp, req)

	mustStatus(t, resp.Code, http.StatusNotFound)
}
