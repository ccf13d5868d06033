package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Client-Id", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api", s.HelloWorldHandler)

	e.GET("/api/health", s.healthHandler)

	var userGroup = e.Group("/api/v1/users")
	userGroup.GET("", s.ListUsers, s.AuthMiddleware)
	userGroup.POST("", s.CreateUser)
	userGroup.GET("/me", s.GetMe, s.AuthMiddleware)
	userGroup.GET("/:id", s.GetUserByID, s.AuthMiddleware)
	userGroup.PUT("/:id", s.UpdateUser, s.AuthMiddleware)
	userGroup.DELETE("/:id", s.DeleteUser, s.AuthMiddleware)

	var apartmentGroup = e.Group("/api/v1/apartments", s.AuthMiddleware)
	apartmentGroup.GET("", s.ListApartments)
	apartmentGroup.POST("", s.CreateApartment)
	apartmentGroup.GET("/:id", s.GetApartmentByID)
	apartmentGroup.PUT("/:id", s.UpdateApartment)
	apartmentGroup.DELETE("/:id", s.DeleteApartment)

	var tenantGroup = e.Group("/api/v1/tenants", s.AuthMiddleware)
	tenantGroup.GET("", s.ListTenants)
	tenantGroup.POST("", s.CreateTenant)
	tenantGroup.GET("/:id", s.GetTenantByID)
	tenantGroup.PUT("/:id", s.UpdateTenant)

	var paymentGroup = e.Group("/api/v1/payments", s.AuthMiddleware)
	paymentGroup.GET("", s.ListRentPayments)
	paymentGroup.POST("", s.CreateRentPayment)
	paymentGroup.GET("/:id", s.GetRentPaymentByID)
	paymentGroup.POST("/:id/pay", s.MarkRentPaymentPaid)

	var taskGroup = e.Group("/api/v1/tasks", s.AuthMiddleware)
	taskGroup.GET("", s.ListMaintenanceTasks)
	taskGroup.POST("", s.CreateMaintenanceTask)
	taskGroup.GET("/:id", s.GetMaintenanceTaskByID)
	taskGroup.PUT("/:id", s.UpdateMaintenanceTask)

	var planGroup = e.Group("/api/v1/plans")
	planGroup.GET("", s.ListPlans)
	planGroup.GET("/:id", s.GetPlanByID)
	planGroup.POST("", s.CreatePlan, s.AuthMiddleware)
	planGroup.PUT("/:id", s.UpdatePlan, s.AuthMiddleware)
	planGroup.DELETE("/:id", s.DeletePlan, s.AuthMiddleware)

	var notiGroup = e.Group("/api/v1/notifications")
	notiGroup.GET("", s.ListNotifications, s.AuthMiddleware)
	notiGroup.GET("/stream", s.StreamNotifications)
	notiGroup.PUT("/read", s.ReadAllNotifications, s.AuthMiddleware)
	notiGroup.PUT("/:id/read", s.ReadNotification, s.AuthMiddleware)

	var metricsGroup = e.Group("/api/v1/metrics", s.AuthMiddleware)
	metricsGroup.GET("/dashboard", s.GetDashboardMetrics)

	var sweepGroup = e.Group("/api/v1/sweeps", s.AuthMiddleware)
	sweepGroup.POST("", s.TriggerSweep)
	sweepGroup.GET("", s.ListSweepRuns)

	var fileGroup = e.Group("/api/v1/files", s.AuthMiddleware)
	fileGroup.GET("/upload-url", s.GetTempUploadURL)
	fileGroup.GET("/public-url", s.GetPublicFileURL)

	return e
}
