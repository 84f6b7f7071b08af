package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authHeader(t *testing.T, s *Server, userID uint) map[string]string {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return map[string]string{"x-auth-token": token}
}

func TestCreatePost(t *testing.T) {
	t.Run("success snapshots author", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Name: "Alice", Avatar: "av"}, nil)
		postRepo := new(MockPostRepository)
		postRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Post).ID = 10
		}).Return(nil)
		s, app := newTestServer(userRepo, new(MockProfileRepository), postRepo)

		resp := postJSON(t, app, "/api/posts", map[string]string{"text": "hello"}, authHeader(t, s, 1))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, uint(10), post.ID)
		assert.Equal(t, "Alice", post.Name)
		postRepo.AssertExpectations(t)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), new(MockPostRepository))
		resp := postJSON(t, app, "/api/posts", map[string]string{"text": ""}, authHeader(t, s, 1))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		_, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), new(MockPostRepository))
		resp := postJSON(t, app, "/api/posts", map[string]string{"text": "hello"}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), new(MockPostRepository))
		req := httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 1)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Post not found"))
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/posts/99", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 1)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeletePost_Ownership(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, UserID: 1}, nil)
	s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/5", nil)
	req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLikePost(t *testing.T) {
	t.Run("returns like list", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("IsLiked", mock.Anything, uint(5), uint(2)).Return(false, nil)
		postRepo.On("Like", mock.Anything, uint(5), uint(2)).Return(nil)
		postRepo.On("ListLikes", mock.Anything, uint(5)).
			Return([]models.Like{{ID: 1, PostID: 5, UserID: 2}}, nil)
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodPut, "/api/posts/like/5", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var likes []models.Like
		decodeBody(t, resp, &likes)
		require.Len(t, likes, 1)
		assert.Equal(t, uint(2), likes[0].UserID)
	})

	t.Run("double like rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("IsLiked", mock.Anything, uint(5), uint(2)).Return(true, nil)
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodPut, "/api/posts/like/5", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Post already liked", body.Error)
	})
}

func TestUnlikePost_NotYetLiked(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
	postRepo.On("Unlike", mock.Anything, uint(5), uint(2)).
		Return(models.NewValidationError("Post has not yet been liked"))
	s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

	req := httptest.NewRequest(http.MethodPut, "/api/posts/unlike/5", nil)
	req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddComment(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
	postRepo.On("AddComment", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 3
	}).Return(nil)
	postRepo.On("ListComments", mock.Anything, uint(5)).
		Return([]models.Comment{{ID: 3, PostID: 5, UserID: 2, Text: "nice", Name: "Bob"}}, nil)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Name: "Bob", Avatar: "av"}, nil)
	s, app := newTestServer(userRepo, new(MockProfileRepository), postRepo)

	resp := postJSON(t, app, "/api/posts/comment/5", map[string]string{"text": "nice"}, authHeader(t, s, 2))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)
}

func TestDeleteComment(t *testing.T) {
	t.Run("author deletes and gets remaining comments", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("GetComment", mock.Anything, uint(5), uint(3)).
			Return(&models.Comment{ID: 3, PostID: 5, UserID: 2}, nil)
		postRepo.On("DeleteComment", mock.Anything, uint(5), uint(3)).Return(nil)
		postRepo.On("ListComments", mock.Anything, uint(5)).Return([]models.Comment{}, nil)
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/3", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		postRepo.AssertExpectations(t)
	})

	t.Run("non-author rejected", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("GetComment", mock.Anything, uint(5), uint(3)).
			Return(&models.Comment{ID: 3, PostID: 5, UserID: 2}, nil)
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/3", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 9)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing comment is 404", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Post{ID: 5, UserID: 1}, nil)
		postRepo.On("GetComment", mock.Anything, uint(5), uint(99)).
			Return(nil, models.NewNotFoundError("Comment does not exist"))
		s, app := newTestServer(new(MockUserRepository), new(MockProfileRepository), postRepo)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/99", nil)
		req.Header.Set("x-auth-token", authHeader(t, s, 2)["x-auth-token"])
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
