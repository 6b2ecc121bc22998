package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type likeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req postRequest
	if !bind(c, &req) {
		return
	}

	post, err := h.engine.CreatePost(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.respondError(c, "create post", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) listPostsByUser(c *gin.Context) {
	posts, err := h.engine.ListPostsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "list posts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.engine.ListAllPosts(c.Request.Context())
	if err != nil {
		h.respondError(c, "list posts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.engine.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "fetch post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) updatePost(c *gin.Context) {
	var req postRequest
	if !bind(c, &req) {
		return
	}

	post, err := h.engine.UpdatePost(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.respondError(c, "update post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.engine.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "delete post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// Likes

func (h *Handler) likePost(c *gin.Context) {
	var req likeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.engine.LikePost(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		h.respondError(c, "like post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func (h *Handler) unlikePost(c *gin.Context) {
	var req likeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.engine.UnlikePost(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		h.respondError(c, "unlike post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post unliked"})
}

func (h *Handler) postLikes(c *gin.Context) {
	n, err := h.engine.PostLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "count likes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": n})
}
