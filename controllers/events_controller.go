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

// EventStore is the slice of the events store these handlers need.
type EventStore interface {
	Create(ctx context.Context, clubID primitive.ObjectID, clubEmail string, in store.EventInput) (*models.Event, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, clubEmail string) ([]models.Event, error)
	Filtered(ctx context.Context, category, search string) ([]models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, in store.EventInput) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RegistrationStore stores event sign-ups.
type RegistrationStore interface {
	Create(ctx context.Context, eventID primitive.ObjectID, eventName, userEmail string) (*models.EventRegistration, error)
	List(ctx context.Context, userEmail string) ([]models.EventRegistration, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ---------------- CREATE ----------------
func CreateEvent(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ClubID string `json:"clubId" binding:"required"`
			store.EventInput
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

		ev, err := events.Create(ctx, clubID, callerEmail(c), input.EventInput)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create event"})
			return
		}
		c.JSON(http.StatusCreated, ev)
	}
}

// ---------------- LIST ----------------
func ListEvents(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := events.List(ctx, c.Query("email"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- GET ----------------
func GetEvent(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ev, err := events.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch event"})
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

// ---------------- FILTERED ----------------
func FilteredEvents(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := events.Filtered(ctx, c.Query("category"), c.Query("search"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- EDIT ----------------
func EditEvent(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input store.EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := events.Update(ctx, id, input); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not update event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "event updated"})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := events.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "event deleted", "id": id.Hex()})
	}
}

// ---------------- REGISTER ----------------
// RegisterForEvent signs the caller up for an event.
func RegisterForEvent(registrations RegistrationStore, events EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EventID string `json:"eventId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ev, err := events.FindByID(ctx, eventID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch event"})
			return
		}

		reg, err := registrations.Create(ctx, ev.ID, ev.EventName, callerEmail(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register"})
			return
		}
		c.JSON(http.StatusCreated, reg)
	}
}

// ---------------- REGISTRATIONS ----------------
func ListRegisteredEvents(registrations RegistrationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := registrations.List(ctx, callerEmail(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch registrations"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------------- CANCEL ----------------
func CancelRegistration(registrations RegistrationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := registrations.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel registration"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "registration canceled"})
	}
}
