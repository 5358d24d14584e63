package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/mvcastillo/healthoffice-backend/config"
	assignmentControllers "github.com/mvcastillo/healthoffice-backend/internal/assignment/controllers"
	assignmentServices "github.com/mvcastillo/healthoffice-backend/internal/assignment/services"
	"github.com/mvcastillo/healthoffice-backend/internal/common/middlewares"
	employeeControllers "github.com/mvcastillo/healthoffice-backend/internal/employee/controllers"
	employeeServices "github.com/mvcastillo/healthoffice-backend/internal/employee/services"
	occupancyControllers "github.com/mvcastillo/healthoffice-backend/internal/occupancy/controllers"
	occupancyServices "github.com/mvcastillo/healthoffice-backend/internal/occupancy/services"
	queueControllers "github.com/mvcastillo/healthoffice-backend/internal/queue/controllers"
	queueServices "github.com/mvcastillo/healthoffice-backend/internal/queue/services"
	referralControllers "github.com/mvcastillo/healthoffice-backend/internal/referral/controllers"
	referralServices "github.com/mvcastillo/healthoffice-backend/internal/referral/services"
	"github.com/mvcastillo/healthoffice-backend/ws"
)

// Init wires services, controllers and routes onto the Echo instance.
func Init(e *echo.Echo, db *sql.DB, catalog *config.StationCatalog, hub *ws.Hub) {
	employeeService := employeeServices.NewEmployeeService(db)
	assignmentService := assignmentServices.NewAssignmentService(db)
	occupancyService := occupancyServices.NewOccupancyService(db, catalog)
	queueService := queueServices.NewQueueService(db)
	referralService := referralServices.NewReferralService(db)

	employeeController := employeeControllers.NewEmployeeController(employeeService)
	assignmentController := assignmentControllers.NewAssignmentController(assignmentService)
	occupancyController := occupancyControllers.NewOccupancyController(occupancyService)
	queueController := queueControllers.NewQueueController(queueService, hub)
	referralController := referralControllers.NewReferralController(referralService)

	api := e.Group("/api")

	// Roster
	employee := api.Group("/employee")
	employee.POST("/login", employeeController.Login) // no JWT
	employee.GET("", employeeController.ListHandler, middlewares.JWTMiddleware())
	employee.PUT("/password", employeeController.ResetPasswordHandler, middlewares.JWTMiddleware())

	// Station assignment registry
	assignment := api.Group("/assignment")
	assignment.POST("/assign", assignmentController.AssignHandler, middlewares.JWTMiddleware())
	assignment.PUT("/unassign", assignmentController.UnassignHandler, middlewares.JWTMiddleware())
	assignment.GET("/list", assignmentController.ListForDateHandler, middlewares.JWTMiddleware())

	// Occupancy snapshot; dashboards poll this without auth, like the
	// waiting-room display endpoints.
	api.GET("/occupancy/snapshot", occupancyController.SnapshotHandler)

	// Patient queue
	queue := api.Group("/queue")
	queue.POST("/enqueue", queueController.EnqueueHandler, middlewares.JWTMiddleware())
	queue.POST("/call-next", queueController.CallNextHandler, middlewares.JWTMiddleware())
	queue.PUT("/complete", queueController.CompleteHandler, middlewares.JWTMiddleware())
	queue.PUT("/skip", queueController.SkipHandler, middlewares.JWTMiddleware())

	// Referrals
	referral := api.Group("/referral")
	referral.POST("/create", referralController.CreateHandler, middlewares.JWTMiddleware())
	referral.PUT("/action", referralController.ActionHandler, middlewares.JWTMiddleware())
	referral.GET("/list", referralController.ListHandler, middlewares.JWTMiddleware())

	// Waiting-room display stream (call announcements only)
	e.GET("/ws/display", ws.ServeWS(hub))
}
