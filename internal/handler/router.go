package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resort-reservations/internal/domain/staff"
	"resort-reservations/internal/handler/api"
	"resort-reservations/internal/handler/middleware"
	"resort-reservations/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, reservationHandler *api.ReservationHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, reservationHandler *api.ReservationHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListReservations},
				{Method: http.MethodGet, Path: "/upcoming", Handler: reservationHandler.UpcomingReservations},
				{Method: http.MethodGet, Path: "/pending", Handler: reservationHandler.PendingReservations},
				{Method: http.MethodGet, Path: "/today/check-ins", Handler: reservationHandler.TodayCheckIns},
				{Method: http.MethodGet, Path: "/today/check-outs", Handler: reservationHandler.TodayCheckOuts},
				{Method: http.MethodGet, Path: "/code/:code", Handler: reservationHandler.GetReservationByCode},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPatch, Path: "/:id", Handler: reservationHandler.UpdateReservation},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: reservationHandler.ConfirmReservation},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: reservationHandler.CheckInReservation},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: reservationHandler.CheckOutReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: reservationHandler.MarkNoShow},
				{Method: http.MethodPost, Path: "/:id/deposit", Handler: reservationHandler.RecordDeposit},
				{Method: http.MethodDelete, Path: "/:id/deposit", Handler: reservationHandler.RefundDeposit},
				{
					Method:  http.MethodDelete,
					Path:    "/:id",
					Handler: reservationHandler.DeleteReservation,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(staff.RoleManager)},
				},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
