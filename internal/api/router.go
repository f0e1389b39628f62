package api

import (
	"net/http"
	"strings"
	"time"

	"quickcart/internal/metrics"
	"quickcart/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions *session.Manager
	stats    *metrics.Stats
	currency string
}

func NewHandler(sessions *session.Manager, stats *metrics.Stats, currency string) *Handler {
	if stats == nil {
		stats = &metrics.Stats{}
	}
	return &Handler{sessions: sessions, stats: stats, currency: currency}
}

// NewRouter registers every route. Session and auth data are expected in the
// request context, see the middleware package.
func NewRouter(h *Handler, corsOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(corsOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	api := r.Group("/api")
	api.GET("/config", h.GetConfig)
	api.GET("/stats", h.GetStats)

	s := api.Group("", h.WithState())
	{
		s.GET("/products", h.ListProducts)
		s.GET("/products/:id", h.GetProduct)
		s.POST("/products/refresh", h.RefreshProducts)

		s.GET("/cart", h.GetCart)
		s.POST("/cart/items", h.AddItem)
		s.PUT("/cart/items/:id", h.UpdateItem)
		s.DELETE("/cart/items/:id", h.RemoveItem)

		s.GET("/me", h.GetMe)
		s.GET("/seller/dashboard", RequireSeller(), h.SellerDashboard)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:3000"}
	}
	return out
}
