// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-atrium/atrium/internal/engine/conf"
	"github.com/go-atrium/atrium/internal/engine/handler"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/internal/engine/router"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/cache"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/database"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp *fiber.App
	Logger  *zap.Logger
	AppConf conf.AppConfig
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string) (*App, func(), error) {
	// load config
	appConf := conf.NewConf(configFile)

	// init logger
	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}

	// init redis, database, context
	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, nil, err
	}
	dbClient, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, nil, err
	}

	appCtx := ctx.NewContext(context.Background(), dbClient, redisClient, logger.Sugar())

	// repositories
	menuRepo := repo.NewMenuRepo(appCtx)
	permRepo := repo.NewPermissionRepo(appCtx)
	orgRepo := repo.NewOrgRepo(appCtx)
	userRepo := repo.NewUserRepo(appCtx)
	tokenRepo := repo.NewTokenRepo(appCtx)

	// services
	menuService := service.NewMenuService(menuRepo)
	permService := service.NewPermissionService(permRepo, redisClient)
	orgService := service.NewOrgService(orgRepo, userRepo)
	userService := service.NewUserService(userRepo, orgService, permService, tokenRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, appConf.Http.Auth)

	// handlers and router
	guard := router.ProvideGuard(&appConf.Http, authService, menuService, permService)
	rt := router.NewRouter(
		&appConf.Http,
		guard,
		handler.NewMenuHandler(menuService),
		handler.NewPermissionHandler(permService, menuService),
		handler.NewOrgHandler(orgService),
		handler.NewUserHandler(userService, orgService),
		handler.NewAuthHandler(authService, userService),
	)

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logger.Sugar().Errorf("redis close error: %v", err)
		}
		if sqlDB, err := dbClient.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	app := &App{
		HttpApp: rt.App(),
		Logger:  logger,
		AppConf: appConf,
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger
	appConf := app.AppConf

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := appConf.Http.Host + ":" + fmt.Sprintf("%d", appConf.Http.Port)
		logger.Sugar().Infow("HTTP listener started",
			"address", addr,
			"instance", id.GetULID(),
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	}()

	// wait for exit signal
	sig := <-quit
	logger.Sugar().Infof("received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	cleanup()

	logger.Info("server shutdown complete")
}
