package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type friendRequest struct {
	FriendID string `json:"friend_id" binding:"required"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.engine.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.respondError(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.engine.ListAllUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.engine.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "fetch user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req userRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.engine.UpdateUser(c.Request.Context(), c.Param("id"), req.Name, req.Email)
	if err != nil {
		h.respondError(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.engine.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Friendships

func (h *Handler) listFriends(c *gin.Context) {
	friends, err := h.engine.ListFriends(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "list friends", err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *Handler) addFriend(c *gin.Context) {
	var req friendRequest
	if !bind(c, &req) {
		return
	}

	if err := h.engine.AddFriend(c.Request.Context(), c.Param("id"), req.FriendID); err != nil {
		h.respondError(c, "add friend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend added"})
}

func (h *Handler) removeFriend(c *gin.Context) {
	if err := h.engine.RemoveFriend(c.Request.Context(), c.Param("id"), c.Param("friend_id")); err != nil {
		h.respondError(c, "remove friend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

func (h *Handler) areFriends(c *gin.Context) {
	ok, err := h.engine.AreFriends(c.Request.Context(), c.Param("id"), c.Param("friend_id"))
	if err != nil {
		h.respondError(c, "check friendship", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"are_friends": ok})
}

func (h *Handler) mutualFriends(c *gin.Context) {
	mutual, err := h.engine.MutualFriends(c.Request.Context(), c.Param("id"), c.Param("other_id"))
	if err != nil {
		h.respondError(c, "list mutual friends", err)
		return
	}
	c.JSON(http.StatusOK, mutual)
}
