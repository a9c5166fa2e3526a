package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/clients/http/clinic"
	httpapi "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/http"
	vacmemory "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/memory"
	vacobs "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/adapters/observability"
	vacapp "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application"
	platformobservability "github.com/davidnguyen27/sep490-PVSM-sub000/internal/platform/observability"
)

// Run boots the vaccination workflow API with observability, the clinic
// client, and the session store wired.
func Run(ctx context.Context) error {
	const serviceName = "vaccination-workflow-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	backend, err := clinic.NewClient(cfg.ClinicBaseURL, &http.Client{Timeout: cfg.ClinicTimeout})
	if err != nil {
		return fmt.Errorf("failed to build clinic client: %w", err)
	}
	logger.Info("clinic backend configured", slog.String("base_url", cfg.ClinicBaseURL))

	sessions := vacmemory.NewSessionStore()
	go sweepSessions(ctx, sessions, cfg, logger)

	coreService := vacapp.NewService(backend, sessions)
	workflowService := vacobs.New(
		coreService,
		vacobs.WithLogger(logger),
		vacobs.WithTracer(instruments.Tracer("internal.domains.vaccinations.application")),
		vacobs.WithMeter(instruments.Meter("internal.domains.vaccinations.application")),
	)

	router := httpapi.NewRouter(httpapi.NewWorkflowAPI(workflowService))
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("vaccination workflow API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("vaccination workflow API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// sweepSessions drops idle view sessions so abandoned drafts do not
// accumulate for the life of the process.
func sweepSessions(ctx context.Context, sessions *vacmemory.SessionStore, cfg Config, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.SessionSweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := sessions.PurgeIdle(cfg.SessionTTL); purged > 0 {
				logger.Info("purged idle workflow sessions", slog.Int("count", purged))
			}
		}
	}
}
