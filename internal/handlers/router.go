package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/authz"
	"github.com/yukikurage/taskhub-api/internal/config"
	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/dto"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
	mw "github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
)

// RouterDeps is everything NewRouter needs. Sessions may be nil, in which
// case only bearer tokens authenticate.
type RouterDeps struct {
	Config   *config.Config
	DB       *gorm.DB
	Services *services.Services
	Sessions sessions.Store
	Policy   authz.Policy
	Log      *zap.Logger
}

// NewRouter mounts the API under /api/v1 plus /health and /metrics.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	policy := deps.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}

	metrics := mw.NewMetrics()
	limiter := mw.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWin)

	r := gin.New()
	r.Use(
		mw.RequestID(),
		mw.Logger(deps.Log),
		mw.Recovery(deps.Log, cfg.IsProduction()),
		metrics.Middleware(),
		mw.CORS(cfg.CORSOrigin),
		mw.ErrorHandler(deps.Log, cfg.IsProduction()),
	)
	if deps.Sessions != nil {
		r.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))
	}

	r.GET("/health", Health(deps.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c)
	})

	auth := NewAuthHandler(deps.Services.Auth)
	users := NewUserHandler(deps.Services.Users)
	tasks := NewTaskHandler(deps.Services.Tasks)
	projects := NewProjectHandler(deps.Services.Projects)
	tickets := NewTicketHandler(deps.Services.Tickets)
	logworks := NewLogworkHandler(deps.Services.Logworks)

	requireAuth := mw.RequireAuth(deps.Services.Auth)
	can := func(action string) gin.HandlerFunc { return mw.Require(policy, action) }
	id := mw.ValidateIDParams("id")

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", mw.ValidateJSON[dto.LoginRequest](), auth.Login)
		authGroup.POST("/logout", auth.Logout)
		authGroup.GET("/me", requireAuth, auth.Me)
		authGroup.POST("/register", requireAuth, can(authz.ActionAuthRegister), mw.ValidateJSON[dto.CreateUserRequest](), auth.Register)
	}

	protected := api.Group("")
	protected.Use(requireAuth)

	userGroup := protected.Group("/users")
	{
		userGroup.GET("", can(authz.ActionUserList), users.List)
		userGroup.POST("", can(authz.ActionUserCreate), mw.ValidateJSON[dto.CreateUserRequest](), users.Create)
		userGroup.GET("/:id", can(authz.ActionUserRead), id, users.Get)
		userGroup.PUT("/:id", can(authz.ActionUserUpdate), id, mw.ValidateJSON[dto.UpdateUserRequest](), users.Update)
		userGroup.DELETE("/:id", can(authz.ActionUserDelete), id, users.Delete)
		userGroup.PATCH("/:id/role", can(authz.ActionUserRole), id, mw.ValidateJSON[dto.ChangeRoleRequest](), users.ChangeRole)
	}

	taskGroup := protected.Group("/tasks")
	{
		taskGroup.GET("", can(authz.ActionTaskRead), tasks.List)
		taskGroup.POST("", can(authz.ActionTaskWrite), mw.ValidateJSON[dto.CreateTaskRequest](), tasks.Create)
		taskGroup.POST("/generate", can(authz.ActionTaskDraft), mw.ValidateJSON[dto.GenerateTasksRequest](), tasks.Generate)
		taskGroup.GET("/user/:userId", can(authz.ActionTaskRead), mw.ValidateIDParams("userId"), tasks.ListByUser)
		taskGroup.GET("/:id", can(authz.ActionTaskRead), id, tasks.Get)
		taskGroup.PUT("/:id", can(authz.ActionTaskWrite), id, mw.ValidateJSON[dto.UpdateTaskRequest](), tasks.Update)
		taskGroup.DELETE("/:id", can(authz.ActionTaskWrite), id, tasks.Delete)
	}

	projectGroup := protected.Group("/projects")
	{
		projectGroup.GET("", can(authz.ActionProjectRead), projects.List)
		projectGroup.POST("", can(authz.ActionProjectWrite), mw.ValidateJSON[dto.CreateProjectRequest](), projects.Create)
		projectGroup.GET("/:id", can(authz.ActionProjectRead), id, projects.Get)
		projectGroup.PUT("/:id", can(authz.ActionProjectWrite), id, mw.ValidateJSON[dto.UpdateProjectRequest](), projects.Update)
		projectGroup.DELETE("/:id", can(authz.ActionProjectWrite), id, projects.Delete)
		projectGroup.POST("/:id/assign-user", can(authz.ActionProjectWrite), id, mw.ValidateJSON[dto.AssignUserRequest](), projects.AssignUser)
	}

	ticketGroup := protected.Group("/tickets")
	{
		ticketGroup.GET("", can(authz.ActionTicketRead), tickets.List)
		ticketGroup.POST("", can(authz.ActionTicketWrite), mw.ValidateJSON[dto.CreateTicketRequest](), tickets.Create)
		ticketGroup.GET("/:id", can(authz.ActionTicketRead), id, tickets.Get)
		ticketGroup.PUT("/:id", can(authz.ActionTicketWrite), id, mw.ValidateJSON[dto.UpdateTicketRequest](), tickets.Update)
		ticketGroup.DELETE("/:id", can(authz.ActionTicketWrite), id, tickets.Delete)
	}

	logworkGroup := protected.Group("/logwork")
	{
		logworkGroup.GET("", can(authz.ActionLogworkRead), logworks.List)
		logworkGroup.POST("", can(authz.ActionLogworkWrite), mw.ValidateJSON[dto.CreateLogworkRequest](), logworks.Create)
		logworkGroup.GET("/:id", can(authz.ActionLogworkRead), id, logworks.Get)
		logworkGroup.PUT("/:id", can(authz.ActionLogworkWrite), id, mw.ValidateJSON[dto.UpdateLogworkRequest](), logworks.Update)
		logworkGroup.DELETE("/:id", can(authz.ActionLogworkWrite), id, logworks.Delete)
	}

	return r
}
