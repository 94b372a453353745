package server

import (
	"net/http"
	"strings"
	"time"

	"barangaylink-backend/internal/config"
	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/middleware"

	assignmentHttp "barangaylink-backend/internal/modules/assignment/delivery/http"
	assignmentRepo "barangaylink-backend/internal/modules/assignment/repository"
	assignmentService "barangaylink-backend/internal/modules/assignment/service"

	catalogHttp "barangaylink-backend/internal/modules/catalog/delivery/http"
	catalogRepo "barangaylink-backend/internal/modules/catalog/repository"
	catalogService "barangaylink-backend/internal/modules/catalog/service"

	reportHttp "barangaylink-backend/internal/modules/report/delivery/http"
	reportService "barangaylink-backend/internal/modules/report/service"

	requestHttp "barangaylink-backend/internal/modules/request/delivery/http"
	requestRepo "barangaylink-backend/internal/modules/request/repository"
	requestService "barangaylink-backend/internal/modules/request/service"

	residentHttp "barangaylink-backend/internal/modules/resident/delivery/http"
	residentRepo "barangaylink-backend/internal/modules/resident/repository"
	residentService "barangaylink-backend/internal/modules/resident/service"

	staffHttp "barangaylink-backend/internal/modules/staff/delivery/http"
	staffRepo "barangaylink-backend/internal/modules/staff/repository"
	staffService "barangaylink-backend/internal/modules/staff/service"

	userHttp "barangaylink-backend/internal/modules/user/delivery/http"
	userRepo "barangaylink-backend/internal/modules/user/repository"
	userService "barangaylink-backend/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func New(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	residents := residentRepo.NewResidentRepository(db)
	services := catalogRepo.NewServiceRepository(db)
	staffMembers := staffRepo.NewStaffRepository(db)
	requests := requestRepo.NewRequestRepository(db)
	assignments := assignmentRepo.NewAssignmentRepository(db)
	users := userRepo.NewUserRepository(db)

	residentSvc := residentService.NewResidentService(residents)
	residentHandler := residentHttp.NewResidentHandler(residentSvc)

	catalogSvc := catalogService.NewCatalogService(services)
	catalogHandler := catalogHttp.NewCatalogHandler(catalogSvc)

	staffSvc := staffService.NewStaffService(staffMembers)
	staffHandler := staffHttp.NewStaffHandler(staffSvc)

	requestSvc := requestService.NewRequestService(requests, residents, services)
	requestHandler := requestHttp.NewRequestHandler(requestSvc)

	assignmentSvc := assignmentService.NewAssignmentService(assignments, requests, staffMembers)
	assignmentHandler := assignmentHttp.NewAssignmentHandler(assignmentSvc)

	authSvc := userService.NewAuthService(users, staffMembers, redisClient, cfg.JWTSecret, cfg.JWTTTL, cfg.LoginLockWindow)
	authHandler := userHttp.NewAuthHandler(authSvc)

	reportSvc := reportService.NewReportService(requestSvc)
	reportHandler := reportHttp.NewReportHandler(reportSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	authRateLimit := middleware.RateLimiter(rate.Limit(cfg.AuthRatePerSec), cfg.AuthRateBurst)

	// Cached GET on public list endpoints; TTL 0 disables.
	listGET := func(rg *gin.RouterGroup, path string, h gin.HandlerFunc) {
		if cfg.CacheTTL > 0 {
			store := gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
			rg.GET(path, middleware.Cache(store, cfg.CacheTTL), h)
			return
		}
		rg.GET(path, h)
	}

	api := router.Group("/api")

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/login", authRateLimit, authHandler.Login)
		usersGroup.POST("/register", authRateLimit, authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), authHandler.Register)
		usersGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		usersGroup.PUT("/admin/password", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), authHandler.ChangeOwnPassword)
		usersGroup.PUT("/staff/:staffId/password", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), authHandler.SetStaffPassword)
		usersGroup.DELETE("/staff/:staffId", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), authHandler.DeleteStaffLogin)
	}

	residentsGroup := api.Group("/residents")
	{
		listGET(residentsGroup, "", residentHandler.ListResidents)
		residentsGroup.GET("/:id", residentHandler.GetResident)
		residentsGroup.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff), residentHandler.CreateResident)
		residentsGroup.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff), residentHandler.UpdateResident)
		residentsGroup.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), residentHandler.DeleteResident)
	}

	servicesGroup := api.Group("/services")
	{
		listGET(servicesGroup, "", catalogHandler.ListServices)
		servicesGroup.GET("/:id", catalogHandler.GetService)
		servicesGroup.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), catalogHandler.CreateService)
		servicesGroup.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), catalogHandler.UpdateService)
		servicesGroup.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), catalogHandler.DeleteService)
	}

	staffGroup := api.Group("/staff")
	{
		listGET(staffGroup, "", staffHandler.ListStaff)
		staffGroup.GET("/:id", staffHandler.GetStaff)
		staffGroup.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), staffHandler.CreateStaff)
		staffGroup.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), staffHandler.UpdateStaff)
		staffGroup.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), staffHandler.DeleteStaff)
	}

	requestsGroup := api.Group("/requests")
	{
		listGET(requestsGroup, "", requestHandler.ListRequests)
		requestsGroup.GET("/:id", requestHandler.GetRequest)
		requestsGroup.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff), requestHandler.CreateRequest)
		requestsGroup.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff), requestHandler.UpdateRequestStatus)
		requestsGroup.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), requestHandler.DeleteRequest)
	}

	assignmentsGroup := api.Group("/assignments")
	{
		listGET(assignmentsGroup, "", assignmentHandler.ListAssignments)
		assignmentsGroup.GET("/:id", assignmentHandler.GetAssignment)
		assignmentsGroup.POST("", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff), assignmentHandler.CreateAssignment)
		assignmentsGroup.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin), assignmentHandler.DeleteAssignment)
	}

	reportsGroup := api.Group("/reports")
	reportsGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleStaff))
	{
		reportsGroup.GET("/requests.csv", reportHandler.RequestsCSV)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for httptest-driven tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
