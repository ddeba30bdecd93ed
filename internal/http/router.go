// README: HTTP router: gin engine, middleware chain, role-gated route groups.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"omaga/internal/http/handlers"
	"omaga/internal/http/middleware"
	"omaga/internal/modules/admin"
	"omaga/internal/modules/driver"
	"omaga/internal/modules/identity"
	"omaga/internal/modules/media"
	"omaga/internal/modules/order"
	"omaga/internal/modules/report"
	"omaga/internal/types"
)

type RouterDeps struct {
	Identity *identity.Service
	Order    *order.Service
	Driver   *driver.Service
	Admin    *admin.Service
	Report   *report.Service
	Media    *media.Service
	Log      *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	authHandler := handlers.NewAuthHandler(deps.Identity, deps.Media)
	orderHandler := handlers.NewOrderHandler(deps.Order, deps.Media, deps.Driver)
	driverHandler := handlers.NewDriverHandler(deps.Driver, deps.Order)
	adminHandler := handlers.NewAdminHandler(deps.Admin, deps.Report)
	reportHandler := handlers.NewReportHandler(deps.Report)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.POST("/api/auth/signup", authHandler.SignUp)
	r.POST("/api/auth/signin", authHandler.SignIn)

	authed := r.Group("/api", middleware.Auth(deps.Identity))
	{
		authed.POST("/auth/signout", authHandler.SignOut)
		authed.GET("/auth/me", authHandler.Me)
		authed.PATCH("/profile", authHandler.UpdateProfile)
		authed.PUT("/profile/password", authHandler.UpdatePassword)
		authed.POST("/profile/picture", authHandler.UploadProfilePicture)

		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders", orderHandler.List)
		authed.GET("/orders/:id", orderHandler.Get)
		authed.POST("/orders/:id/images", orderHandler.UploadImage)

		authed.GET("/drivers/online", driverHandler.ListOnline)
		authed.POST("/reports", reportHandler.Create)
	}

	drv := authed.Group("/driver", middleware.RequireRole(types.RoleDriver))
	{
		drv.GET("/orders", driverHandler.Orders)
		drv.PUT("/availability", driverHandler.SetAvailability)
		drv.POST("/orders/:id/accept", driverHandler.Accept)
		drv.POST("/orders/:id/start", driverHandler.Start)
		drv.POST("/orders/:id/complete", driverHandler.Complete)
		drv.POST("/orders/:id/cancel", driverHandler.Cancel)
	}

	adm := authed.Group("/admin", middleware.RequireRole(types.RoleAdmin))
	{
		adm.GET("/overview", adminHandler.Overview)
		adm.GET("/users", adminHandler.Users)
		adm.GET("/users/export", adminHandler.ExportUsers)
		adm.GET("/orders", adminHandler.Orders)
		adm.GET("/reports", adminHandler.Reports)
		adm.GET("/drivers/:user_id/orders", adminHandler.DriverOrders)
		adm.POST("/users/:id/promote", adminHandler.Promote)
		adm.POST("/users/:id/demote", adminHandler.Demote)
		adm.POST("/reports/:id/resolve", adminHandler.ResolveReport)
	}

	return r
}
