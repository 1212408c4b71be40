package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/controller"
	"code_tutor_backend/internal/service"
	"code_tutor_backend/pkg/logger"
	"code_tutor_backend/pkg/monitoring"
	"code_tutor_backend/pkg/security"
	"code_tutor_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
	tp       shutdownable
}

type shutdownable interface {
	Shutdown(ctx context.Context) error
}

type services struct {
	ai           *service.AIService
	learningGoal *service.LearningGoalService
	tutor        *service.TutorService
}

type controllers struct {
	tutor  *controller.TutorController
	health *controller.HealthController
}

func (a *App) initServices(cfg *config.Config) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.learningGoal = service.NewLearningGoalService(cfg.Tutor)
	s.tutor = service.NewTutorService(s.ai, s.learningGoal, cfg.Tutor)

	return s
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		tutor:  controller.NewTutorController(s.tutor, s.learningGoal),
		health: controller.NewHealthController(cfg),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadConfig 配置热更新：只有上游模型配置支持运行时替换，
// 端口、中间件等需要重启生效
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.ai.UpdateConfig(cfg.AI)
	logger.Log.Info("AI config updated",
		zap.String("model", cfg.AI.Model),
		zap.String("base_url", cfg.AI.BaseURL))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	app := &App{Config: cfg}

	services := app.initServices(cfg)
	app.services = services
	controllers := app.initControllers(services, cfg)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("code-tutor", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tp = tp
	}

	app.registerRoutes(router, controllers)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
