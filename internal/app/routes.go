package app

import (
	"log/slog"
	"net/http"

	"Backoffice/internal/audit"
	"Backoffice/internal/cache"
	"Backoffice/internal/config"
	"Backoffice/internal/handlers"
	"Backoffice/internal/repo"
	"Backoffice/internal/service"
	"Backoffice/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, producer *audit.Producer, log *slog.Logger) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	ttl := cfg.Redis.DefaultTTL.Duration()

	employeeRepo := repo.NewPGEmployeeRepo(db)
	var employeeCache *cache.EmployeeCache
	if rdb != nil {
		employeeCache = cache.NewEmployeeCache(rdb, ttl)
	}
	employeeSvc := service.NewEmployeeService(employeeRepo, employeeCache, producer, log.With("component", "employees"))

	taskRepo := repo.NewPGTaskRepo(db)
	var taskCache *cache.TaskCache
	if rdb != nil {
		taskCache = cache.NewTaskCache(rdb, ttl)
	}
	taskSvc := service.NewTaskService(taskRepo, taskCache, producer, log.With("component", "tasks"))

	api := r.Group("/api/v1")
	registerEmployeeAPIRoutes(api, handlers.NewEmployeeHandler(employeeSvc))
	registerTaskAPIRoutes(api, handlers.NewTaskHandler(taskSvc))

	registerEmployeeWebRoutes(r, web.NewEmployeeWeb(employeeSvc, log.With("component", "employees")))
	registerTaskWebRoutes(r, web.NewTaskWeb(taskSvc, log.With("component", "tasks")))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Backoffice",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerEmployeeAPIRoutes(api *gin.RouterGroup, h *handlers.EmployeeHandler) {
	api.POST("/employees", h.Create)
	api.GET("/employees", h.List)
	api.GET("/employees/:id", h.GetByID)
	api.PUT("/employees/:id", h.Update)
	api.DELETE("/employees/:id", h.Delete)
}

func registerTaskAPIRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/:id", h.GetByID)
	api.PUT("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
}

func registerEmployeeWebRoutes(r *gin.Engine, h *web.EmployeeWeb) {
	r.GET("/employees", h.List)
	r.GET("/employees/create", h.CreateForm)
	r.POST("/employees/create", h.Create)
	r.GET("/employees/update/:id", h.UpdateForm)
	r.POST("/employees/update/:id", h.Update)
	r.GET("/employees/delete/:id", h.DeleteConfirm)
	r.POST("/employees/delete/:id", h.Delete)
}

func registerTaskWebRoutes(r *gin.Engine, h *web.TaskWeb) {
	r.GET("/tasks", h.List)
	r.GET("/tasks/create", h.CreateForm)
	r.POST("/tasks/create", h.Create)
	r.GET("/tasks/update/:id", h.UpdateForm)
	r.POST("/tasks/update/:id", h.Update)
	r.GET("/tasks/delete/:id", h.DeleteConfirm)
	r.POST("/tasks/delete/:id", h.Delete)
}
