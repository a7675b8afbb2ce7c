package follow

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func followContext(t *testing.T, viewerID, username, action string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/profiles/"+username+"/"+action, nil)
	c.Params = gin.Params{{Key: "username", Value: username}}
	c.Set("user_id", viewerID)
	return c, w
}

func userRow(id, username string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "username"}).
		AddRow(id, time.Now(), username)
}

func TestIsFollowing(t *testing.T) {
	mock := setupMockDB(t)

	tests := []struct {
		name           string
		mockRows       *sqlmock.Rows
		expectedResult bool
	}{
		{
			name: "pair exists",
			mockRows: sqlmock.NewRows([]string{"id", "created_at", "follower_id", "author_id"}).
				AddRow("follow1", time.Now(), "user1", "user2"),
			expectedResult: true,
		},
		{
			name:           "pair absent",
			mockRows:       sqlmock.NewRows([]string{"id", "created_at", "follower_id", "author_id"}),
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`SELECT`).WillReturnRows(tt.mockRows)

			result, err := IsFollowing("user1", "user2")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestFollowUserCreatesRow(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(userRow("author-1", "leo"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "follower_id", "author_id"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "follows"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, w := followContext(t, "viewer-1", "leo", "follow")
	FollowUser(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/users/leo/posts", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUserIdempotent(t *testing.T) {
	mock := setupMockDB(t)

	// An existing pair means no INSERT is issued, only the redirect.
	mock.ExpectQuery(`SELECT`).WillReturnRows(userRow("author-1", "leo"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "follower_id", "author_id"}).
			AddRow("follow1", time.Now(), "viewer-1", "author-1"))

	c, w := followContext(t, "viewer-1", "leo", "follow")
	FollowUser(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/users/leo/posts", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUserSelfFollow(t *testing.T) {
	mock := setupMockDB(t)

	// The author resolves to the viewer: nothing saved, still redirected.
	mock.ExpectQuery(`SELECT`).WillReturnRows(userRow("viewer-1", "narcissus"))

	c, w := followContext(t, "viewer-1", "narcissus", "follow")
	FollowUser(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/users/narcissus/posts", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUserUnknownAuthor(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}))

	c, w := followContext(t, "viewer-1", "ghost", "follow")
	FollowUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnfollowUserMissingPairIsNoop(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(userRow("author-1", "leo"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	c, w := followContext(t, "viewer-1", "leo", "unfollow")
	UnfollowUser(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/users/leo/posts", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowUserUnknownAuthor(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}))

	c, w := followContext(t, "viewer-1", "ghost", "unfollow")
	UnfollowUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
