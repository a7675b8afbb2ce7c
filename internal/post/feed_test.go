package post

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGroupFeedUnknownSlug(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "slug", "title", "description"}))

	c, w := testContext(t, http.MethodGet, "/api/groups/ghost/posts", "", "")
	c.Params = gin.Params{{Key: "slug", Value: "ghost"}}
	GroupFeed(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGroupFeedFiltersByGroup(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "slug", "title", "description"}).
			AddRow("group-1", time.Now(), "cats", "Cats", "Cat pictures"))
	// Both the count and the window query must carry the group filter.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE group_id`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM "posts" WHERE group_id`).
		WillReturnRows(postRow("post-1", "author-1", "meow"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}).
			AddRow("author-1", time.Now(), "leo"))

	c, w := testContext(t, http.MethodGet, "/api/groups/cats/posts", "", "")
	c.Params = gin.Params{{Key: "slug", Value: "cats"}}
	GroupFeed(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"cats"`)
	assert.Contains(t, w.Body.String(), "post-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileFeedUnknownUsername(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}))

	c, w := testContext(t, http.MethodGet, "/api/users/ghost/posts", "", "")
	c.Params = gin.Params{{Key: "username", Value: "ghost"}}
	ProfileFeed(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileFeedFollowingFlag(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}).
			AddRow("author-1", time.Now(), "leo"))
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows([]string{"id", "created_at", "author_id", "group_id", "text", "image_url"}).
		AddRow("post-2", time.Now(), "author-1", nil, "second", "").
		AddRow("post-1", time.Now(), "author-1", nil, "first", "")
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)
	// The viewer follows the author.
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "follower_id", "author_id"}).
			AddRow("follow-1", time.Now(), "viewer-1", "author-1"))

	c, w := testContext(t, http.MethodGet, "/api/users/leo/posts", "", "viewer-1")
	c.Params = gin.Params{{Key: "username", Value: "leo"}}
	ProfileFeed(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"following":true`)
	assert.Contains(t, w.Body.String(), `"n_posts":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileFeedAnonymousViewer(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}).
			AddRow("author-1", time.Now(), "leo"))
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "author_id", "group_id", "text", "image_url"}))

	c, w := testContext(t, http.MethodGet, "/api/users/leo/posts", "", "")
	c.Params = gin.Params{{Key: "username", Value: "leo"}}
	ProfileFeed(c)

	assert.Equal(t, http.StatusOK, w.Code)
	// No follow lookup for anonymous viewers.
	assert.Contains(t, w.Body.String(), `"following":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowFeedScopedToFollowedAuthors(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE author_id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM "posts" WHERE author_id IN`).
		WillReturnRows(postRow("post-9", "author-1", "from a followed author"))
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "username"}).
			AddRow("author-1", time.Now(), "leo"))

	c, w := testContext(t, http.MethodGet, "/api/follow/posts", "", "viewer-1")
	FollowFeed(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post-9")
	assert.NoError(t, mock.ExpectationsWereMet())
}
