package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	controllers "github.com/clubnest/club-nest-go/controllers"
	middleware "github.com/clubnest/club-nest-go/middleware"
	models "github.com/clubnest/club-nest-go/models"
	payments "github.com/clubnest/club-nest-go/payments"
	store "github.com/clubnest/club-nest-go/store"
)

// Deps carries everything the route table wires together.
type Deps struct {
	Users         *store.Users
	Managers      *store.Managers
	Clubs         *store.Clubs
	Memberships   *store.Memberships
	Payments      *store.Payments
	Events        *store.Events
	Registrations *store.Registrations
	Stats         *store.Stats
	Reconciler    *payments.Reconciler
	Verifier      middleware.TokenVerifier
	Log           *zap.Logger
}

func SetupRoutes(r *gin.Engine, d *Deps) {
	auth := middleware.Auth(d.Verifier, d.Log)
	admin := middleware.RequireRole(d.Users, models.RoleAdmin)
	manager := middleware.RequireRole(d.Users, models.RoleClubManager)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Club Nest API")
	})

	// users
	r.POST("/user", controllers.Register(d.Users))
	r.GET("/users/:email/role", controllers.GetUserRole(d.Users))
	r.GET("/users", auth, admin, controllers.ListUsers(d.Users))
	r.PATCH("/user/:id", auth, admin, controllers.UpdateUserRole(d.Users))

	// club manager applications
	r.POST("/clubManager", auth, controllers.ApplyManager(d.Managers))
	r.GET("/getClubManager", auth, admin, controllers.ListManagerApplications(d.Managers))
	r.PATCH("/clubManager/:id", auth, admin, controllers.DecideManagerApplication(d.Managers, d.Users))

	// clubs
	r.GET("/filteredClubs", controllers.FilteredClubs(d.Clubs))
	r.GET("/clubs/:id", controllers.GetClub(d.Clubs))
	r.GET("/clubs", auth, controllers.ListClubs(d.Clubs))
	r.POST("/addClub", auth, manager, controllers.CreateClub(d.Clubs))
	r.PATCH("/clubEdit/:id", auth, manager, controllers.EditClub(d.Clubs))
	r.PATCH("/clubStatus/:id", auth, admin, controllers.SetClubStatus(d.Clubs))
	r.DELETE("/club/:id", auth, manager, controllers.DeleteClub(d.Clubs))

	// memberships
	r.POST("/addMembership", auth, controllers.CreateMembership(d.Memberships, d.Clubs))
	r.GET("/membershipGet", auth, controllers.ListMemberships(d.Memberships))
	r.PATCH("/updateMembershipStatus/:id", auth, manager, controllers.UpdateMembershipStatus(d.Memberships))

	// payments
	r.POST("/create-checkout-session", auth, controllers.CreateCheckoutSession(d.Reconciler, d.Clubs))
	r.PATCH("/payment-success", controllers.ConfirmPayment(d.Reconciler))
	r.PATCH("/freeJoin", auth, controllers.FreeJoin(d.Reconciler))
	r.GET("/payments", auth, controllers.ListPayments(d.Payments))

	// events
	r.GET("/filteredEvents", controllers.FilteredEvents(d.Events))
	r.GET("/getEvents", controllers.ListEvents(d.Events))
	r.GET("/getEvent/:id", controllers.GetEvent(d.Events))
	r.POST("/addEvent", auth, manager, controllers.CreateEvent(d.Events))
	r.PATCH("/editEvent/:id", auth, manager, controllers.EditEvent(d.Events))
	r.DELETE("/deleteEvent/:id", auth, manager, controllers.DeleteEvent(d.Events))

	// event registrations
	r.POST("/addEventRegistration", auth, controllers.RegisterForEvent(d.Registrations, d.Events))
	r.GET("/getRegisteredEvents", auth, controllers.ListRegisteredEvents(d.Registrations))
	r.DELETE("/cancelRegister/:id", auth, controllers.CancelRegistration(d.Registrations))

	// statistics
	r.GET("/admin-stats", auth, admin, controllers.AdminStats(d.Stats))
	r.GET("/manager-stats", auth, manager, controllers.ManagerStats(d.Stats))
	r.GET("/member-stats", auth, controllers.MemberStats(d.Stats))
}
