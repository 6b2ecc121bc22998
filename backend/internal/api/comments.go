package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) listAllComments(c *gin.Context) {
	comments, err := h.engine.ListAllComments(c.Request.Context())
	if err != nil {
		h.respondError(c, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.engine.ListCommentsByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) createComment(c *gin.Context) {
	var req createCommentRequest
	if !bind(c, &req) {
		return
	}

	comment, err := h.engine.CreateComment(c.Request.Context(), c.Param("id"), req.UserID, req.Content)
	if err != nil {
		h.respondError(c, "create comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) getComment(c *gin.Context) {
	comment, err := h.engine.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "fetch comment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) updateComment(c *gin.Context) {
	var req updateCommentRequest
	if !bind(c, &req) {
		return
	}

	comment, err := h.engine.UpdateComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		h.respondError(c, "update comment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) deleteComment(c *gin.Context) {
	if err := h.engine.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "delete comment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *Handler) likeComment(c *gin.Context) {
	var req likeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.engine.LikeComment(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		h.respondError(c, "like comment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment liked"})
}

func (h *Handler) unlikeComment(c *gin.Context) {
	var req likeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.engine.UnlikeComment(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		h.respondError(c, "unlike comment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment unliked"})
}

func (h *Handler) commentLikes(c *gin.Context) {
	n, err := h.engine.CommentLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "count likes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": n})
}
