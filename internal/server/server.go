// Package server assembles the HTTP router from the services and handlers.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"followuply/internal/config"
	"followuply/internal/handlers"
	"followuply/internal/metrics"
	"followuply/internal/middleware"
	"followuply/internal/ratelimit"
	"followuply/internal/services"
)

// Rate-limited actions.
const (
	ActionMutate   = "mutate"
	ActionValidate = "validate"
	ActionRestore  = "restore"
)

// Deps are the shared resources the router is built from.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Metrics *metrics.Metrics
	Limiter *ratelimit.Limiter
	// Policy overrides the undo window and clock. Nil uses
	// DefaultPolicy(Config.UndoWindow).
	Policy *services.Policy
}

// NewRouter wires every service and handler and registers the routes.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	policy := services.DefaultPolicy(cfg.UndoWindow)
	if deps.Policy != nil {
		policy = *deps.Policy
	}

	// Services
	db := deps.DB
	auditService := services.NewAuditService(db)
	clientService := services.NewClientService(db, auditService, policy)
	invoiceService := services.NewInvoiceService(db, auditService, policy)
	reminderService := services.NewReminderService(db, auditService, policy)
	expenseService := services.NewExpenseService(db, auditService, policy)
	profileService := services.NewProfileService(db, auditService)
	notificationService := services.NewNotificationService(db, policy)
	dashboardService := services.NewDashboardService(invoiceService, clientService, reminderService)

	// Handlers
	m := deps.Metrics
	clientHandler := handlers.NewClientHandler(clientService, m)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, m)
	reminderHandler := handlers.NewReminderHandler(reminderService, m)
	expenseHandler := handlers.NewExpenseHandler(expenseService, m)
	profileHandler := handlers.NewProfileHandler(profileService, m)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	validateHandler := handlers.NewValidateHandler(m)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		router.GET("/metrics", middleware.APIKeyAuth(cfg.MetricsAPIKey), gin.WrapH(m.Handler()))
	}

	mutate := middleware.RateLimit(deps.Limiter, m, ActionMutate, cfg.RateLimitMutations, cfg.RateLimitWindow)
	validate := middleware.RateLimit(deps.Limiter, m, ActionValidate, cfg.RateLimitMutations*10, cfg.RateLimitWindow)
	// Restores draw from their own budget, separate from mutations.
	restore := middleware.RateLimit(deps.Limiter, m, ActionRestore, cfg.RateLimitMutations, cfg.RateLimitWindow)

	// Protected routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.POST("/validate/:entity", validate, validateHandler.Validate)

	// Client routes
	clients := v1.Group("/clients")
	clients.POST("", mutate, clientHandler.CreateClient)
	clients.GET("", clientHandler.ListClients)
	clients.GET("/search", clientHandler.SearchClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", mutate, clientHandler.UpdateClient)
	clients.DELETE("/:id", mutate, clientHandler.DeleteClient)
	clients.POST("/:id/restore", restore, clientHandler.RestoreClient)

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("", mutate, invoiceHandler.CreateInvoice)
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/search", invoiceHandler.SearchInvoices)
	invoices.POST("/overdue", mutate, invoiceHandler.MarkOverdueInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
	invoices.PUT("/:id", mutate, invoiceHandler.UpdateInvoice)
	invoices.PATCH("/:id/status", mutate, invoiceHandler.UpdateInvoiceStatus)
	invoices.POST("/:id/paid", mutate, invoiceHandler.MarkInvoicePaid)
	invoices.DELETE("/:id", mutate, invoiceHandler.DeleteInvoice)
	invoices.POST("/:id/restore", restore, invoiceHandler.RestoreInvoice)

	// Reminder routes
	reminders := v1.Group("/reminders")
	reminders.POST("", mutate, reminderHandler.CreateReminder)
	reminders.GET("", reminderHandler.ListReminders)
	reminders.GET("/search", reminderHandler.SearchReminders)
	reminders.GET("/:id", reminderHandler.GetReminder)
	reminders.PUT("/:id", mutate, reminderHandler.UpdateReminder)
	reminders.POST("/:id/complete", mutate, reminderHandler.CompleteReminder)
	reminders.DELETE("/:id", mutate, reminderHandler.DeleteReminder)
	reminders.POST("/:id/restore", restore, reminderHandler.RestoreReminder)

	// Expense routes
	expenses := v1.Group("/expenses")
	expenses.POST("", mutate, expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/search", expenseHandler.SearchExpenses)
	expenses.GET("/summary", expenseHandler.SummarizeExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", mutate, expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", mutate, expenseHandler.DeleteExpense)
	expenses.POST("/:id/restore", restore, expenseHandler.RestoreExpense)

	// Profile
	v1.GET("/profile", profileHandler.GetProfile)
	v1.PUT("/profile", mutate, profileHandler.SaveProfile)

	// Notifications
	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
	notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)

	return router
}

// NewHTTPServer wraps the router with the configured port and conservative
// connection timeouts.
func NewHTTPServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
