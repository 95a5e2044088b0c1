package router

import (
	"time"

	"github.com/go-atrium/atrium/internal/engine/handler"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/16
 * @file: router.go
 * @description: setup router
 *  		     internal api router, use by web
 */

type Router struct {
	Http  *httpx.Http
	Guard *middleware.Guard

	menu *handler.MenuHandler
	perm *handler.PermissionHandler
	org  *handler.OrgHandler
	user *handler.UserHandler
	auth *handler.AuthHandler
}

func NewRouter(
	httpConf *httpx.Http,
	guard *middleware.Guard,
	menu *handler.MenuHandler,
	perm *handler.PermissionHandler,
	org *handler.OrgHandler,
	user *handler.UserHandler,
	auth *handler.AuthHandler,
) *Router {
	return &Router{
		Http:  httpConf,
		Guard: guard,
		menu:  menu,
		perm:  perm,
		org:   org,
		user:  user,
		auth:  auth,
	}
}

func (rt *Router) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             rt.Http.BodyLimit,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		DisableStartupMessage: true,
	})

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	app.Use(requestid.New(requestid.Config{
		Generator: id.ShortId,
	}))

	// cors
	app.Use(middleware.CorsMiddleware())

	app.Use(middleware.AccessLogMiddleware(rt.Http))

	metrics.Register()
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	if rt.Http.PProf {
		rt.debugRouter(app.Group("/debug/pprof"))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// engine router, internal api router
	api := app.Group("/api/v1")
	{
		rt.authRouter(api)
		rt.menuRouter(api)
		rt.permissionRouter(api)
		rt.orgRouter(api)
		rt.userRouter(api)
	}

	return app
}
