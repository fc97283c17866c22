package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yshalenyk/ordertrack/internal/server/models"
)

// Router builds the gin engine with the auth endpoints and the role-gated
// probe used by operational checks. Business routers mount their own routes
// behind RequireAuth.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.Use(s.rateLimit())
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refresh)
	auth.POST("/logout", s.RequireAuth(), s.logout)
	auth.POST("/logout-all", s.RequireAuth(), s.logoutAll)
	auth.GET("/me", s.RequireAuth(), s.me)

	api := r.Group("/api")
	api.GET("/admin/ping", s.RequireAuth(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	return r
}
