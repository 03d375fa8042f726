package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	store "github.com/clubnest/club-nest-go/store"
)

// StatsStore computes the dashboard rollups.
type StatsStore interface {
	Admin(ctx context.Context, now time.Time) ([]store.StatRow, error)
	Manager(ctx context.Context, managerEmail string) (*store.ManagerStats, error)
	Member(ctx context.Context, email string) (*store.MemberStats, error)
}

// ---------------- ADMIN ----------------
func AdminStats(stats StatsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rows, err := stats.Admin(ctx, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch admin stats"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// ---------------- MANAGER ----------------
func ManagerStats(stats StatsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rollup, err := stats.Manager(ctx, callerEmail(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch manager stats"})
			return
		}
		c.JSON(http.StatusOK, rollup)
	}
}

// ---------------- MEMBER ----------------
func MemberStats(stats StatsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		rollup, err := stats.Member(ctx, callerEmail(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch member stats"})
			return
		}
		c.JSON(http.StatusOK, rollup)
	}
}
