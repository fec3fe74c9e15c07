package routes

import (
	"agendabiz-backend/config"
	"agendabiz-backend/controllers"
	"agendabiz-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Finance-Password"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		professionals := api.Group("/professionals")
		{
			professionals.POST("", controllers.CreateProfessional)
			professionals.GET("", controllers.GetProfessionals)
			professionals.GET("/:id", controllers.GetProfessional)
			professionals.PUT("/:id", controllers.UpdateProfessional)
			professionals.DELETE("/:id", controllers.DeleteProfessional)
		}

		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("/day", controllers.GetDay)
			appointments.PATCH("/:id/status", controllers.AdvanceAppointmentStatus)
			appointments.POST("/:id/reschedule", controllers.RescheduleAppointment)
		}

		movements := api.Group("/movements")
		{
			movements.POST("", controllers.RecordMovement)
			movements.GET("", controllers.GetMovements)
		}

		finance := api.Group("/finance")
		{
			finance.PUT("/access", controllers.SetFinanceAccess)
			finance.POST("/verify", controllers.VerifyFinanceAccess)
			finance.GET("/summary", controllers.GetFinanceSummary)
		}

		messaging := api.Group("/whatsapp")
		{
			messaging.GET("/conversations", controllers.GetConversations)
			messaging.GET("/conversations/:id/messages", controllers.GetMessages)
			messaging.GET("/connection", controllers.GetWhatsAppConnection)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/business", controllers.GetBusiness)
			settings.PUT("/business", controllers.UpdateBusiness)
			settings.GET("/antifuro", controllers.GetAntifuroPolicy)
			settings.PUT("/antifuro", controllers.UpsertAntifuroPolicy)
		}

		api.GET("/subscription", controllers.GetSubscription)
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
