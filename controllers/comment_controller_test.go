package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/autumn-gallery/api-go/controllers"
	"github.com/autumn-gallery/api-go/models"
	"github.com/autumn-gallery/api-go/routes"
	"github.com/autumn-gallery/api-go/services"
	"github.com/autumn-gallery/api-go/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Comment{}, &models.Reaction{}))
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r, db)
	return r
}

func mintToken(t *testing.T, username string, privileged bool) string {
	t.Helper()
	token, err := utils.GenerateToken(username, privileged, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type threadNode struct {
	ID       uint         `json:"id"`
	Author   string       `json:"author"`
	ParentID *uint        `json:"parentId"`
	Text     string       `json:"text"`
	Replies  []threadNode `json:"replies"`
}

type threadResponse struct {
	Comments []threadNode `json:"comments"`
	Count    int          `json:"count"`
}

func postComment(t *testing.T, r http.Handler, token string, imageID uint, text string, parentID *uint) models.Comment {
	t.Helper()

	body := gin.H{"text": text}
	if parentID != nil {
		body["parentId"] = *parentID
	}
	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/images/%d/comments", imageID), token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCommentEndpointsRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))

	w := doRequest(t, r, http.MethodGet, "/api/images/42/comments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/images/42/comments", "not a bearer", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostAndLoadThread(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))
	bob := mintToken(t, "bob", false)
	amy := mintToken(t, "amy", false)

	c1 := postComment(t, r, bob, 42, "c1", nil)
	c2 := postComment(t, r, amy, 42, "c2", &c1.ID)
	c3 := postComment(t, r, bob, 42, "c3", &c2.ID)

	// One level deeper than the cap.
	w := doRequest(t, r, http.MethodPost, "/api/images/42/comments", amy, gin.H{"text": "c4", "parentId": c3.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/images/42/comments", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var thread threadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
	assert.Equal(t, 3, thread.Count)
	require.Len(t, thread.Comments, 1)

	root := thread.Comments[0]
	assert.Equal(t, c1.ID, root.ID)
	assert.Equal(t, "bob", root.Author)
	require.Len(t, root.Replies, 1)
	assert.Equal(t, c2.ID, root.Replies[0].ID)
	require.Len(t, root.Replies[0].Replies, 1)
	assert.Equal(t, c3.ID, root.Replies[0].Replies[0].ID)
}

func TestPostCommentValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))
	bob := mintToken(t, "bob", false)

	w := doRequest(t, r, http.MethodPost, "/api/images/42/comments", bob, gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/images/42/comments", bob, gin.H{"text": "hi", "parentId": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/images/not-a-number/comments", bob, gin.H{"text": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditComment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))
	bob := mintToken(t, "bob", false)
	amy := mintToken(t, "amy", false)

	created := postComment(t, r, bob, 42, "before", nil)
	path := fmt.Sprintf("/api/comments/%d", created.ID)

	w := doRequest(t, r, http.MethodPatch, path, amy, gin.H{"text": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPatch, path, bob, gin.H{"text": "after"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "after", updated.Text)
	assert.Equal(t, created.ID, updated.ID)

	w = doRequest(t, r, http.MethodPatch, "/api/comments/999", bob, gin.H{"text": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentCascades(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))
	bob := mintToken(t, "bob", false)
	amy := mintToken(t, "amy", false)

	root := postComment(t, r, bob, 42, "root", nil)
	reply := postComment(t, r, amy, 42, "reply", &root.ID)
	postComment(t, r, bob, 42, "deep", &reply.ID)

	path := fmt.Sprintf("/api/comments/%d", root.ID)

	w := doRequest(t, r, http.MethodDelete, path, amy, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodDelete, path, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/images/42/comments", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var thread threadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &thread))
	assert.Zero(t, thread.Count)
	assert.Empty(t, thread.Comments)
}

func TestModeratorDelete(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newTestRouter(t, newTestDB(t))
	bob := mintToken(t, "bob", false)
	mod := mintToken(t, "mod", true)

	created := postComment(t, r, bob, 42, "reported", nil)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/comments/%d", created.ID), mod, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMentionHelpers(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.User{Username: "alice"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "albert"}).Error)

	cc := controllers.NewCommentController(services.NewCommentService(db), services.NewGormDirectory(db))

	query, ok := cc.ComposeMentionQuery("hello @al")
	require.True(t, ok)
	assert.Equal(t, "al", query)

	_, ok = cc.ComposeMentionQuery("hello @al ")
	assert.False(t, ok)

	candidates := cc.ResolveMentionCandidates(context.Background(), "hello @al")
	require.Len(t, candidates, 2)
	assert.Equal(t, "albert", candidates[0].Username)
	assert.Equal(t, "alice", candidates[1].Username)

	assert.Equal(t, "hello @alice ", cc.InsertMention("hello @al", "alice"))
}

type failingDirectory struct{}

func (failingDirectory) Search(ctx context.Context, prefix string, limit int) ([]services.MentionCandidate, error) {
	return nil, services.ErrDirectoryUnavailable
}

func TestMentionHelpersSwallowDirectoryFailure(t *testing.T) {
	cc := controllers.NewCommentController(services.NewCommentService(newTestDB(t)), failingDirectory{})

	candidates := cc.ResolveMentionCandidates(context.Background(), "hello @al")
	assert.NotNil(t, candidates)
	assert.Empty(t, candidates)
}
