package main

import (
	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type appDeps struct {
	analysis    *usecase.AnalysisUsecase
	submissions *usecase.SubmissionUsecase
	health      *usecase.HealthUsecase
}

func newApp(cfg *config.Config, deps appDeps, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimit,
		ProxyHeader:  cfg.App.ProxyHeader,
		ErrorHandler: handler.ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid} | ${error}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.App.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.App.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return deps.health.DatabaseStatus(c.UserContext()) != usecase.DatabaseDisconnected
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RequestContext())

	api := app.Group(cfg.App.RoutePrefix)
	handler.NewAnalysisHandler(deps.analysis, log.Named("http")).RegisterRoutes(api)
	handler.NewHealthHandler(deps.health).RegisterRoutes(api)
	handler.NewDocumentHandler(cfg.Features.MaxUploadSize, log.Named("http")).RegisterRoutes(api)
	handler.NewSubmissionHandler(deps.submissions).RegisterRoutes(api)

	return app
}
