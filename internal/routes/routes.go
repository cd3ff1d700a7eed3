package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/clinic"
	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// Workflow services
	registry := clinic.NewRegistry(db, log)
	examinations := clinic.NewExaminationLog(db, log)
	pharmacy := clinic.NewPharmacy(db, log)
	billing := clinic.NewBilling(db, cfg.ExaminationFee)
	payments := clinic.NewPayments(db, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	patientHandler := handlers.NewPatientHandler(registry)
	queueHandler := handlers.NewQueueHandler(registry)
	examinationHandler := handlers.NewExaminationHandler(examinations)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacy)
	drugHandler := handlers.NewDrugHandler(db)
	billHandler := handlers.NewBillHandler(billing)
	paymentHandler := handlers.NewPaymentHandler(payments)
	adminHandler := handlers.NewAdminHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		// Registration desk
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleRegistration, models.RoleAdmin), patientHandler.RegisterPatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id/history", patientHandler.GetPatientHistory)
		}

		queueRoutes := private.Group("/queue")
		{
			queueRoutes.GET("", queueHandler.GetQueue)
			queueRoutes.PUT("/:id", queueHandler.UpdateQueueStatus)
			queueRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleRegistration, models.RoleAdmin), queueHandler.CancelQueue)
		}

		// Doctor's desk
		examinationRoutes := private.Group("/examinations")
		examinationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
		{
			examinationRoutes.POST("", examinationHandler.CreateExamination)
		}

		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), examinationHandler.CreatePrescription)
			prescriptionRoutes.GET("", examinationHandler.GetPrescriptions)
		}

		// Pharmacy desk
		pharmacyRoutes := private.Group("/pharmacy")
		pharmacyRoutes.Use(middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin))
		{
			pharmacyRoutes.GET("/pending-patients", pharmacyHandler.GetPendingPatients)
			pharmacyRoutes.GET("/queue", pharmacyHandler.GetPharmacyQueue)
			pharmacyRoutes.PATCH("/prescriptions/:id/fulfill", pharmacyHandler.FulfillPrescription)
			pharmacyRoutes.POST("/examinations/:id/fulfill", pharmacyHandler.FulfillExamination)
		}

		drugRoutes := private.Group("/drugs")
		{
			drugRoutes.GET("", drugHandler.GetDrugs)
			drugRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin), drugHandler.CreateDrug)
			drugRoutes.PATCH("/:id/stock", middleware.RoleAuthMiddleware(models.RolePharmacist, models.RoleAdmin), drugHandler.AdjustStock)
		}

		// Cashier desk
		billRoutes := private.Group("/bills")
		billRoutes.Use(middleware.RoleAuthMiddleware(models.RoleCashier, models.RoleAdmin))
		{
			billRoutes.GET("/pending", billHandler.GetPendingBills)
		}

		paymentRoutes := private.Group("/payments")
		{
			paymentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleCashier, models.RoleAdmin), paymentHandler.RecordPayment)
			paymentRoutes.GET("", paymentHandler.GetPayments)
		}

		// Administration
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/dashboard-summary", adminHandler.GetDashboardSummary)
			adminRoutes.POST("/users", userHandler.CreateUser)
			adminRoutes.GET("/users", userHandler.GetUsers)
		}

		private.GET("/users/doctors", userHandler.GetDoctors)

		reportRoutes := private.Group("/reports")
		reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			reportRoutes.POST("", reportHandler.GenerateReport)
			reportRoutes.GET("", reportHandler.GetReports)
		}

		scheduleRoutes := private.Group("/schedules")
		{
			scheduleRoutes.GET("", scheduleHandler.GetSchedules)
			scheduleRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), scheduleHandler.CreateSchedule)
			scheduleRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), scheduleHandler.UpdateSchedule)
			scheduleRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), scheduleHandler.DeleteSchedule)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
