package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/controllers"
	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/middleware"
)

// Controllers bundles everything SetupRouter mounts
type Controllers struct {
	Auth         *controllers.AuthController
	PrivateEvent *controllers.PrivateEventController
	AdminEvent   *controllers.AdminEventController
	PublicEvent  *controllers.PublicEventController
	Request      *controllers.RequestController
	User         *controllers.UserController
	Category     *controllers.CategoryController
	Compilation  *controllers.CompilationController
}

// SetupRouter configures all application routes under /api/v1
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, rateLimiter gin.HandlerFunc) {
	v1 := router.Group("/api/v1")

	// --- Public routes, rate limited per client IP ---
	public := v1.Group("")
	if rateLimiter != nil {
		public.Use(rateLimiter)
	}
	{
		public.POST("/auth/login", c.Auth.Login)

		events := public.Group("/events")
		{
			events.GET("", c.PublicEvent.ListEvents)
			events.GET("/:id", c.PublicEvent.GetEvent)
		}

		categories := public.Group("/categories")
		{
			categories.GET("", c.Category.ListCategories)
			categories.GET("/:id", c.Category.GetCategory)
		}

		compilations := public.Group("/compilations")
		{
			compilations.GET("", c.Compilation.ListCompilations)
			compilations.GET("/:id", c.Compilation.GetCompilation)
		}
	}

	// --- Private routes, the :userId segment must match the caller ---
	private := v1.Group("/users/:userId")
	private.Use(authMiddleware.JWTAuth())
	{
		events := private.Group("/events")
		{
			events.POST("", c.PrivateEvent.CreateEvent)
			events.GET("", c.PrivateEvent.ListOwnEvents)
			events.PATCH("", c.PrivateEvent.UpdateEvent)
			events.GET("/:eventId", c.PrivateEvent.GetOwnEvent)
			events.PATCH("/:eventId", c.PrivateEvent.CancelEvent)
			events.GET("/:eventId/requests", c.PrivateEvent.ListEventRequests)
			events.PATCH("/:eventId/requests/:reqId/confirm", c.PrivateEvent.ConfirmRequest)
			events.PATCH("/:eventId/requests/:reqId/reject", c.PrivateEvent.RejectRequest)
		}

		requests := private.Group("/requests")
		{
			requests.POST("", c.Request.SubmitRequest)
			requests.GET("", c.Request.ListOwnRequests)
			requests.PATCH("/:requestId/cancel", c.Request.CancelRequest)
		}
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		events := admin.Group("/events")
		{
			events.GET("", c.AdminEvent.ListEvents)
			events.PUT("/:eventId", c.AdminEvent.UpdateEvent)
			events.PATCH("/:eventId/publish", c.AdminEvent.PublishEvent)
			events.PATCH("/:eventId/reject", c.AdminEvent.RejectEvent)
		}

		admin.GET("/requests", c.Request.ListRequests)

		users := admin.Group("/users")
		{
			users.GET("", c.User.ListUsers)
			users.POST("", c.User.CreateUser)
			users.DELETE("/:userId", c.User.DeleteUser)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", c.Category.CreateCategory)
			categories.PATCH("", c.Category.UpdateCategory)
			categories.DELETE("/:categoryId", c.Category.DeleteCategory)
		}

		compilations := admin.Group("/compilations")
		{
			compilations.POST("", c.Compilation.CreateCompilation)
			compilations.DELETE("/:compId", c.Compilation.DeleteCompilation)
			compilations.PATCH("/:compId/pin", c.Compilation.PinCompilation)
			compilations.DELETE("/:compId/pin", c.Compilation.UnpinCompilation)
			compilations.PATCH("/:compId/events/:eventId", c.Compilation.AddEvent)
			compilations.DELETE("/:compId/events/:eventId", c.Compilation.RemoveEvent)
		}
	}
}
