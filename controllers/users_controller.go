package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	middleware "github.com/clubnest/club-nest-go/middleware"
	models "github.com/clubnest/club-nest-go/models"
	store "github.com/clubnest/club-nest-go/store"
)

// UserStore is the slice of the users store these handlers need.
type UserStore interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	RoleByEmail(ctx context.Context, email string) (models.Role, error)
	SetRoleByID(ctx context.Context, id primitive.ObjectID, role models.Role) error
}

// ---------------- REGISTER ----------------
// Register records a user on first sign-up. Every new user starts as a
// member; a repeat sign-up is a soft success.
func Register(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name  string `json:"name"`
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := users.Create(ctx, input.Name, input.Email)
		if errors.Is(err, store.ErrAlreadyExists) {
			c.JSON(http.StatusOK, gin.H{"message": "user already exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// ---------------- LIST ----------------
func ListUsers(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := users.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- ROLE LOOKUP ----------------
// GetUserRole resolves a role for the signed-in frontend; unknown emails
// report the default member role.
func GetUserRole(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		role, err := users.RoleByEmail(ctx, c.Param("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch role"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	}
}

// ---------------- ROLE UPDATE ----------------
// UpdateUserRole lets an admin promote or demote a user.
func UpdateUserRole(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			Role models.Role `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidRole(input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := users.SetRoleByID(ctx, id, input.Role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update role"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "role updated"})
	}
}

// callerEmail returns the verified email bound by the auth middleware.
func callerEmail(c *gin.Context) string {
	return c.GetString(middleware.ContextEmail)
}
