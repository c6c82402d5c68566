package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	combatv1alpha1 "github.com/KirkDiggler/rpg-combat/internal/handlers/combat/v1alpha1"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
	"github.com/KirkDiggler/rpg-combat/internal/redis"
	actorprogress "github.com/KirkDiggler/rpg-combat/internal/repositories/actor_progress"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

const shutdownTimeout = 30 * time.Second

var (
	httpPort     int
	grpcPort     int
	redisAddr    string
	contentDB    string
	contentFile  string
	logLevel     string
	logFormat    string
	roundLockTTL time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the combat server",
	Long:  `Start the combat HTTP API and the gRPC health endpoint.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "HTTP API port")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 50051, "gRPC health port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", envOr("REDIS_ADDR", "localhost:6379"), "redis address or redis:// URL")
	serverCmd.Flags().StringVar(&contentDB, "content-db", envOr("CONTENT_DB", "content.db"), "sqlite content database")
	serverCmd.Flags().StringVar(&contentFile, "content-file", "", "serve reference data from a JSON catalog instead of the database")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	serverCmd.Flags().StringVar(&logFormat, "log-format", logger.FormatText, "log format (text or json)")
	serverCmd.Flags().DurationVar(&roundLockTTL, "round-lock-ttl", combat.DefaultRoundLockTTL, "how long a stuck round blocks its actor")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runServer(cmd *cobra.Command, args []string) error {
	log := logger.New(logger.Options{Level: logLevel, Format: logFormat})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	redisClient, err := redis.NewClient(redisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
	}

	contentRepo, err := openContent()
	if err != nil {
		return err
	}

	sessionRepo, err := combatsession.NewRedisRepository(&combatsession.Config{
		Client:      redisClient,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("cs"),
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	progressRepo, err := actorprogress.NewRedisRepository(&actorprogress.Config{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create progress repository: %w", err)
	}

	eventBus := events.NewBus()
	subscribeAudit(eventBus, log)

	combatService, err := combat.NewOrchestrator(&combat.Config{
		SessionRepo:  sessionRepo,
		ProgressRepo: progressRepo,
		ContentRepo:  contentRepo,
		DiceRoller:   dice.DefaultRoller,
		EventBus:     eventBus,
		Logger:       log,
		RoundLockTTL: roundLockTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create combat orchestrator: %w", err)
	}

	combatHandler, err := combatv1alpha1.NewHandler(&combatv1alpha1.HandlerConfig{
		CombatService: combatService,
	})
	if err != nil {
		return fmt.Errorf("failed to create combat handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	combatHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcLog := grpc_logging.LoggerFunc(logFunc(log))
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLog),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLog),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	errChan := make(chan error, 2)
	go func() {
		log.Infof("HTTP server starting on port %d...", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()
	go func() {
		log.Infof("gRPC health server starting on port %d...", grpcPort)
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down servers...")
	case err := <-errChan:
		cancel()
		shutdown(log, httpServer, grpcServer, healthServer)
		return err
	}

	shutdown(log, httpServer, grpcServer, healthServer)
	return nil
}

func shutdown(log *logrus.Logger, httpServer *http.Server, grpcServer *grpc.Server, healthServer *health.Server) {
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP shutdown did not complete")
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		log.Info("Servers stopped gracefully")
	}
}

// openContent serves reference data from a catalog file when one is given,
// otherwise from the seeded sqlite database
func openContent() (content.Repository, error) {
	if contentFile != "" {
		catalog, err := content.LoadCatalogFile(contentFile)
		if err != nil {
			return nil, err
		}
		if err := catalog.Validate(); err != nil {
			return nil, err
		}
		return content.NewInMemory(catalog), nil
	}

	db, err := content.OpenSQLite(contentDB)
	if err != nil {
		return nil, err
	}
	return content.NewSQLRepository(&content.SQLConfig{DB: db})
}

// requestLogger attaches a request-scoped entry to the request context and
// logs each call once it completes
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(logger.WithEntry(c.Request.Context(), entry))

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request handled")
	}
}

// subscribeAudit logs every combat event
func subscribeAudit(bus events.EventBus, log *logrus.Logger) {
	for _, eventType := range []string{
		combat.EventCombatStarted,
		combat.EventCombatRoundResolved,
		combat.EventCombatVictory,
		combat.EventCombatDefeat,
	} {
		bus.SubscribeFunc(eventType, 0, func(_ context.Context, e events.Event) error {
			fields := logrus.Fields{"event_type": e.Type()}
			if src := e.Source(); src != nil {
				fields["source"] = src.GetID()
			}
			if tgt := e.Target(); tgt != nil {
				fields["target"] = tgt.GetID()
			}
			log.WithFields(fields).Info("combat event")
			return nil
		})
	}
}

func logFunc(log *logrus.Logger) func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	return func(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
		entry := logrus.NewEntry(log)
		for i := 0; i+1 < len(fields); i += 2 {
			if key, ok := fields[i].(string); ok {
				entry = entry.WithField(key, fields[i+1])
			}
		}

		switch level {
		case grpc_logging.LevelDebug:
			entry.Debug(msg)
		case grpc_logging.LevelWarn:
			entry.Warn(msg)
		case grpc_logging.LevelError:
			entry.Error(msg)
		default:
			entry.Info(msg)
		}
	}
}
