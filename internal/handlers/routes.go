package handlers

import (
	"log"
	"net/http"
	"tasklist/internal/middleware"
	"tasklist/internal/web"

	"github.com/gin-gonic/gin"
)

// Router wires every route. allowedOrigins applies to /api only.
func (h *Handler) Router(allowedOrigins []string) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(h.logger), middleware.Recover(h.logger))
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.StaticFS()))

	router.GET("/health", h.Health)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/tasks")
	})

	router.GET("/login", middleware.RedirectIfAuthenticated(h.gate), h.LoginPage)
	router.POST("/login", h.Login)
	router.POST("/logout", middleware.RequirePage(h.gate), h.Logout)

	pages := router.Group("/tasks", middleware.RequirePage(h.gate))
	pages.GET("", h.TasksPage)
	pages.POST("", h.CreateTask)
	pages.POST("/edit/cancel", h.CancelEdit)
	pages.POST("/keys", h.KeyPress)
	pages.POST("/:id/toggle", h.ToggleTask)
	pages.POST("/:id/delete", h.DeleteTask)
	pages.POST("/:id/edit", h.StartEdit)
	pages.POST("/:id/save", h.SaveEdit)

	api := router.Group("/api", middleware.CORS(allowedOrigins))
	api.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	api.POST("/login", h.APILogin)

	secured := api.Group("", middleware.RequireAPI(h.gate))
	secured.POST("/logout", h.APILogout)
	secured.GET("/tasks", h.APIListTasks)
	secured.POST("/tasks", h.APICreateTask)
	secured.PATCH("/tasks/:id", h.APIUpdateTask)
	secured.DELETE("/tasks/:id", h.APIDeleteTask)
	secured.POST("/tasks/:id/toggle", h.APIToggleTask)

	logRoutes(h.logger, router)
	return router, nil
}

func logRoutes(logger *log.Logger, router *gin.Engine) {
	for _, r := range router.Routes() {
		logger.Printf("route %s %s", r.Method, r.Path)
	}
}
