package app

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/controller"
	"ap_quiz_backend/internal/quiz"
	"ap_quiz_backend/internal/repository"
	"ap_quiz_backend/internal/service"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/configwatcher"
	"ap_quiz_backend/pkg/database"
	"ap_quiz_backend/pkg/events"
	"ap_quiz_backend/pkg/logger"
	"ap_quiz_backend/pkg/monitoring"
	"ap_quiz_backend/pkg/security"
	"ap_quiz_backend/pkg/tracing"
	"ap_quiz_backend/web"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/v2/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Mongo           *mongo.Client
	Publisher       events.Publisher
	tracer          *sdktrace.TracerProvider
	services        *services
	configCallbacks []func(*config.Config)
	stopWatch       context.CancelFunc
	janitor         io.Closer
}

// sessionSweepInterval 内存会话的清理周期
const sessionSweepInterval = time.Minute

type repositories struct {
	results  repository.ResultRepository
	sessions repository.SessionRepository
}

type services struct {
	storage *service.StorageService
	session *service.SessionService
	chart   *service.ChartService
	quiz    *service.QuizService
}

type controllers struct {
	quiz   *controller.QuizController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initRepositories 按配置创建结果存储和会话存储，并确保表头存在
func (a *App) initRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	repos := &repositories{}

	switch cfg.Results.Backend {
	case util.BackendSheets:
		r, err := repository.NewSheetsResultRepository(ctx, &cfg.Sheets)
		if err != nil {
			return nil, err
		}
		repos.results = r
	case util.BackendMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		a.DB = db
		repos.results = repository.NewGormResultRepository(db)
	case util.BackendMongo:
		client, err := database.InitMongo(&cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("initialize mongo: %w", err)
		}
		a.Mongo = client
		repos.results = repository.NewMongoResultRepository(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	case util.BackendMemory:
		repos.results = repository.NewMemoryResultRepository()
	default:
		return nil, fmt.Errorf("unknown results backend %q", cfg.Results.Backend)
	}

	switch cfg.Session.Store {
	case util.SessionStoreRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("initialize redis: %w", err)
		}
		a.Redis = rdb
		repos.sessions = repository.NewRedisSessionRepository(rdb)
	default:
		repos.sessions = repository.NewMemorySessionRepository()
	}

	headerCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repos.results.EnsureHeader(headerCtx); err != nil {
		return nil, fmt.Errorf("ensure result header: %w", err)
	}

	return repos, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.session = service.NewSessionService(repos.sessions, &cfg.Session)
	s.chart = service.NewChartService(s.storage)
	s.quiz = service.NewQuizService(
		repos.results,
		s.session,
		quiz.NewGenerator(nil),
		s.chart,
		s.storage,
		a.Publisher,
	)

	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		quiz: controller.NewQuizController(s.quiz),
		health: controller.NewHealthController(map[string]controller.Pinger{
			"results":  repos.results,
			"sessions": repos.sessions,
		}),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		"/metrics", "/api/health",
	))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) initPublisher(cfg *config.Config) {
	publisher, err := events.NewEventPublisher(cfg.Events.RabbitMQURI, cfg.Events.Exchange)
	if err != nil {
		// 事件是旁路功能，连接失败不影响答题
		logger.Log.Error("Failed to connect event publisher, events are disabled", zap.Error(err))
		publisher, _ = events.NewEventPublisher("", cfg.Events.Exchange)
	}
	a.Publisher = publisher
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	repos, err := app.initRepositories(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize result store", zap.Error(err), zap.String("backend", cfg.Results.Backend))
	}
	logger.Log.Info("Result store ready", zap.String("backend", repos.results.Backend()))

	app.initPublisher(cfg)
	app.build(repos)
	return app
}

// NewAppWithRepositories 使用已创建的存储组装应用，不连接外部服务
func NewAppWithRepositories(cfg *config.Config, results repository.ResultRepository, sessions repository.SessionRepository) *App {
	app := &App{Config: cfg}
	app.initPublisher(cfg)
	app.build(&repositories{results: results, sessions: sessions})
	return app
}

func (a *App) build(repos *repositories) {
	cfg := a.Config
	gin.SetMode(cfg.Server.Mode)

	if mem, ok := repos.sessions.(*repository.MemorySessionRepository); ok {
		mem.StartJanitor(sessionSweepInterval)
		a.janitor = mem
	}

	a.services = a.initServices(repos, cfg)
	controllers := a.initControllers(a.services, repos)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	router.SetHTMLTemplate(web.Templates())
	a.Router = router

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, controllers, a.services, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level updated", zap.String("level", logger.ParseLevel(newCfg).String()))
	})
}

// WatchConfig 监听配置文件变化并触发回调
func (a *App) WatchConfig() {
	if a.Config.ConfigPath == "" {
		logger.Log.Warn("No config file in use, config watching is disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel

	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
	logger.Log.Info("Watching config file", zap.String("path", a.Config.ConfigPath))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.janitor != nil {
		a.janitor.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			logger.Log.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.Mongo != nil {
		database.DisconnectMongo(a.Mongo)
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}
