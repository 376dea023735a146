package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexedwards/argon2id"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/jwt"
	"nasa-mission-control/app/server/middlewares"
)

const testSecret = "test-secret"

var userColumns = []string{"id", "name", "email", "role", "password"}

func newTestApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	j, err := jwt.New(testSecret)
	require.NoError(t, err)

	// unreachable redis: every cache lookup misses, which is the path unit
	// tests want anyway
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	return NewApp(zap.NewNop(), db, rdb, j, "DEMO_KEY", "https://api.nasa.gov"), mock
}

func jsonContext(t *testing.T, method string, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// setContextUser attaches a verified-token identity the way BearerAuth would.
func setContextUser(c echo.Context, id uint, role string) {
	c.Set(middlewares.ContextKeyUser, &gojwt.Token{
		Claims: gojwt.MapClaims{
			"id":    float64(id),
			"email": "someone@nasa.com",
			"role":  role,
			"exp":   float64(time.Now().Add(time.Hour).Unix()),
		},
	})
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	require.NoError(t, err)
	return hash
}

func TestAuthLogin(t *testing.T) {
	hash := mustHash(t, "admin123")

	tests := []struct {
		name         string
		body         string
		rows         *sqlmock.Rows
		expectedCode int
	}{
		{
			name:         "seeded admin credentials",
			body:         `{"email":"admin@nasa.com","password":"admin123"}`,
			rows:         sqlmock.NewRows(userColumns).AddRow(1, "Mission Control Admin", "admin@nasa.com", constants.RoleAdmin, hash),
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown user",
			body:         `{"email":"nobody@nasa.com","password":"admin123"}`,
			rows:         sqlmock.NewRows(userColumns),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "wrong password",
			body:         `{"email":"admin@nasa.com","password":"hunter2"}`,
			rows:         sqlmock.NewRows(userColumns).AddRow(1, "Mission Control Admin", "admin@nasa.com", constants.RoleAdmin, hash),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "missing password",
			body:         `{"email":"admin@nasa.com"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock := newTestApp(t)
			if tt.rows != nil {
				mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(tt.rows)
			}

			c, rec := jsonContext(t, http.MethodPost, "/auth/login", tt.body)
			require.NoError(t, app.AuthLogin(c))
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestAuthLoginTokenClaims(t *testing.T) {
	app, mock := newTestApp(t)

	hash := mustHash(t, "admin123")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Mission Control Admin", "admin@nasa.com", constants.RoleAdmin, hash))

	c, rec := jsonContext(t, http.MethodPost, "/auth/login", `{"email":"admin@nasa.com","password":"admin123"}`)
	require.NoError(t, app.AuthLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	// token must round-trip the stored identity
	j, err := jwt.New(testSecret)
	require.NoError(t, err)
	user, err := j.ParseUser(res.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "admin@nasa.com", user.Email)
	assert.Equal(t, constants.RoleAdmin, user.Role)
	assert.Greater(t, user.Expires, time.Now().Unix())
}

func TestPasswordChangeWrongCurrent(t *testing.T) {
	app, mock := newTestApp(t)

	hash := mustHash(t, "admin123")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Mission Control Admin", "admin@nasa.com", constants.RoleAdmin, hash))
	// no update is expected: the stored hash must stay untouched

	c, rec := jsonContext(t, http.MethodPost, "/auth/change-password",
		`{"currentPassword":"wrong","newPassword":"newpass123"}`)
	setContextUser(c, 1, constants.RoleAdmin)

	require.NoError(t, app.PasswordChange(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileGet(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "Mission Control Admin", "admin@nasa.com", constants.RoleAdmin, "hash"))

	c, rec := jsonContext(t, http.MethodGet, "/auth/profile", "")
	setContextUser(c, 1, constants.RoleAdmin)

	require.NoError(t, app.ProfileGet(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hash")
	assert.Contains(t, rec.Body.String(), "admin@nasa.com")
}
