package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/clubnest/club-nest-go/models"
	store "github.com/clubnest/club-nest-go/store"
)

// ManagerStore is the slice of the manager-applications store these
// handlers need.
type ManagerStore interface {
	Create(ctx context.Context, email, reason string) (*models.ManagerApplication, error)
	List(ctx context.Context) ([]models.ManagerApplication, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) error
}

// RoleSetter updates a user's role by email, used when an application is
// decided.
type RoleSetter interface {
	SetRoleByEmail(ctx context.Context, email string, role models.Role) error
}

// ---------------- APPLY ----------------
// ApplyManager files a club-manager application for the caller. A repeat
// while one is on file gets the soft "already requested" message.
func ApplyManager(managers ManagerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app, err := managers.Create(ctx, callerEmail(c), input.Reason)
		if errors.Is(err, store.ErrAlreadyRequested) {
			c.JSON(http.StatusOK, gin.H{"message": "you have already requested, wait for approve"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create application"})
			return
		}
		c.JSON(http.StatusCreated, app)
	}
}

// ---------------- LIST ----------------
func ListManagerApplications(managers ManagerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		apps, err := managers.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch applications"})
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// ---------------- DECIDE ----------------
// DecideManagerApplication approves or rejects an application and moves the
// applicant's role with it: approved applicants become Club-Manager,
// rejected ones fall back to member.
func DecideManagerApplication(managers ManagerStore, users RoleSetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
			return
		}

		var input struct {
			Status models.ApplicationStatus `json:"status" binding:"required"`
			Email  string                   `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Status != models.ApplicationApproved && input.Status != models.ApplicationRejected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := managers.SetStatus(ctx, id, input.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update application"})
			return
		}

		role := models.RoleMember
		if input.Status == models.ApplicationApproved {
			role = models.RoleClubManager
		}
		if err := users.SetRoleByEmail(ctx, input.Email, role); err != nil && !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user role"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "application " + string(input.Status)})
	}
}
