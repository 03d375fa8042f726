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

// MembershipStore is the slice of the memberships store these handlers need.
type MembershipStore interface {
	Create(ctx context.Context, clubID primitive.ObjectID, clubName, memberEmail string, clubFee float64) (*models.Membership, error)
	List(ctx context.Context, memberEmail string) ([]models.Membership, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, to models.MembershipStatus) error
}

// ClubFinder resolves a club so the membership inherits the authoritative
// fee rather than a client-supplied one.
type ClubFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Club, error)
}

// ---------------- CREATE ----------------
// CreateMembership starts a membership request for the caller. The fee comes
// from the club record; free clubs start at "pending join", paid clubs at
// "pendingPayment".
func CreateMembership(memberships MembershipStore, clubs ClubFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ClubID string `json:"clubId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		clubID, err := primitive.ObjectIDFromHex(input.ClubID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		club, err := clubs.FindByID(ctx, clubID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch club"})
			return
		}

		m, err := memberships.Create(ctx, club.ID, club.ClubName, callerEmail(c), club.MemberShipFee)
		if errors.Is(err, store.ErrAlreadyRequested) {
			c.JSON(http.StatusOK, gin.H{"message": "membership already requested"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create membership"})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// ---------------- LIST ----------------
func ListMemberships(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := memberships.List(ctx, c.Query("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch memberships"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- STATUS ----------------
// UpdateMembershipStatus lets a manager move a membership between states;
// illegal moves (including any move off "active") are rejected.
func UpdateMembershipStatus(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership id"})
			return
		}

		var input struct {
			Status models.MembershipStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = memberships.SetStatus(ctx, id, input.Status)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "membership not found"})
		case errors.Is(err, store.ErrBadTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "illegal status transition"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update membership"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "membership status updated"})
		}
	}
}
