// Package api exposes the social graph engine over HTTP with gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"socialgraph/backend/internal/social"
)

// Handler translates HTTP requests into engine calls
type Handler struct {
	engine *social.Engine
	log    *zap.Logger
}

// NewHandler creates a handler for the given engine
func NewHandler(engine *social.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{engine: engine, log: log}
}

// RegisterRoutes mounts the resource routes. Gin requires a single wildcard
// name per path segment, so post routes all use :id.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)

		users.GET("/:id/friends", h.listFriends)
		users.POST("/:id/friends", h.addFriend)
		users.GET("/:id/friends/:friend_id", h.areFriends)
		users.DELETE("/:id/friends/:friend_id", h.removeFriend)
		users.GET("/:id/mutual-friends/:other_id", h.mutualFriends)

		users.POST("/:id/posts", h.createPost)
		users.GET("/:id/posts", h.listPostsByUser)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", h.listPosts)
		posts.GET("/:id", h.getPost)
		posts.PUT("/:id", h.updatePost)
		posts.DELETE("/:id", h.deletePost)

		posts.POST("/:id/like", h.likePost)
		posts.DELETE("/:id/like", h.unlikePost)
		posts.GET("/:id/likes", h.postLikes)

		posts.GET("/:id/comments", h.listComments)
		posts.POST("/:id/comments", h.createComment)
	}

	comments := r.Group("/comments")
	{
		comments.GET("", h.listAllComments)
		comments.GET("/:id", h.getComment)
		comments.PUT("/:id", h.updateComment)
		comments.DELETE("/:id", h.deleteComment)

		comments.POST("/:id/like", h.likeComment)
		comments.DELETE("/:id/like", h.unlikeComment)
		comments.GET("/:id/likes", h.commentLikes)
	}
}

// bind decodes the JSON body, answering 400 on failure
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
