// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dealflow-workers/internal/common/aws"
	"dealflow-workers/internal/common/config"
	"dealflow-workers/internal/common/database"
	"dealflow-workers/internal/common/logger"
	"dealflow-workers/internal/common/observability"
	"dealflow-workers/internal/matching"
	"dealflow-workers/internal/pricing"
	"dealflow-workers/internal/readiness"
	"dealflow-workers/internal/scoring"

	// Intake Workers (1)
	vdd "dealflow-workers/internal/workers/intake/validate-deal-data"

	// Scoring Workers (3)
	crs "dealflow-workers/internal/workers/scoring/check-readiness-score"
	rds "dealflow-workers/internal/workers/scoring/record-deal-score"
	sd "dealflow-workers/internal/workers/scoring/score-deal"

	// Matching Workers (3)
	arr "dealflow-workers/internal/workers/matching/apply-relevance-ranking"
	cms "dealflow-workers/internal/workers/matching/calculate-match-score"
	smn "dealflow-workers/internal/workers/matching/send-match-notification"

	// Pricing Workers (2)
	pcs "dealflow-workers/internal/workers/pricing/price-credit-stream"
	scs "dealflow-workers/internal/workers/pricing/stack-credit-streams"

	// Data Access Workers (1)
	qdi "dealflow-workers/internal/workers/data-access/query-deal-index"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Decision Engines ---
	// Versioned tables: every persisted score, match, and priced stream
	// carries the version it was computed under.
	scoringEngine := scoring.NewEngine(scoring.DefaultModel())
	readinessEngine := readiness.NewEngine(readiness.DefaultWeights())
	matchingEngine := matching.NewEngine(matching.DefaultWeights())
	pricingEngine := pricing.NewEngine(pricing.DefaultTables())

	zapLog.Info("Decision engines initialized",
		zap.String("scoringModel", scoringEngine.Model().Version),
		zap.String("pricingTables", pricingEngine.Tables().Version),
	)

	// --- AWS Notification Clients ---
	var sesClient *aws.SESClient
	var snsClient *aws.SNSClient
	if cfg.Notifications.Email.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		zapLog.Info("AWS notification clients initialized")
	}

	// --- Register Workers ---

	// --- 1. Intake Workers (1) ---
	if cfg.Workers[vdd.TaskType].Enabled {
		handler, err := vdd.NewHandler(
			&vdd.Config{
				Timeout: config.GetDuration(cfg.Workers[vdd.TaskType].Timeout),
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create validate-deal-data handler", zap.Error(err))
		}
		startWorker(zeebeClient, vdd.TaskType, cfg.Workers[vdd.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Scoring Workers (3) ---
	if cfg.Workers[sd.TaskType].Enabled {
		handler := sd.NewHandler(
			&sd.Config{
				Timeout: config.GetDuration(cfg.Workers[sd.TaskType].Timeout),
			},
			scoringEngine, log,
		)
		startWorker(zeebeClient, sd.TaskType, cfg.Workers[sd.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[crs.TaskType].Enabled {
		handler := crs.NewHandler(
			&crs.Config{
				Timeout:   config.GetDuration(cfg.Workers[crs.TaskType].Timeout),
				Threshold: cfg.Scoring.ReadinessThreshold,
			},
			readinessEngine, log,
		)
		startWorker(zeebeClient, crs.TaskType, cfg.Workers[crs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rds.TaskType].Enabled {
		handler := rds.NewHandler(
			&rds.Config{
				Timeout: config.GetDuration(cfg.Workers[rds.TaskType].Timeout),
			},
			pg.GetDB(), log,
		)
		startWorker(zeebeClient, rds.TaskType, cfg.Workers[rds.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Matching Workers (3) ---
	catalogTTL := time.Duration(cfg.Matching.CatalogCacheTTL) * time.Second

	if cfg.Workers[cms.TaskType].Enabled {
		handler := cms.NewHandler(
			&cms.Config{
				Timeout:  config.GetDuration(cfg.Workers[cms.TaskType].Timeout),
				CacheTTL: catalogTTL,
			},
			matchingEngine, pg.GetDB(), redis.GetClient(), log,
		)
		startWorker(zeebeClient, cms.TaskType, cfg.Workers[cms.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[arr.TaskType].Enabled {
		handler := arr.NewHandler(
			&arr.Config{
				Timeout:    config.GetDuration(cfg.Workers[arr.TaskType].Timeout),
				CacheTTL:   catalogTTL,
				MinScore:   cfg.Matching.MinScore,
				MaxResults: cfg.Matching.MaxResults,
			},
			matchingEngine, pg.GetDB(), redis.GetClient(), log,
		)
		startWorker(zeebeClient, arr.TaskType, cfg.Workers[arr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[smn.TaskType].Enabled && cfg.Notifications.Email.Enabled {
		handler := smn.NewHandler(
			&smn.Config{
				Timeout:   config.GetDuration(cfg.Workers[smn.TaskType].Timeout),
				FromEmail: cfg.Notifications.Email.FromEmail,
				TopicARN:  cfg.Notifications.Events.TopicARN,
				// The notify threshold is configured as a score; map it to
				// the quality band the worker compares against.
				NotifyQuality:     matchingEngine.Quality(cfg.Matching.NotifyThreshold),
				MaxMatchesInEmail: cfg.Matching.MaxResults,
			},
			sesClient, snsClient, log,
		)
		startWorker(zeebeClient, smn.TaskType, cfg.Workers[smn.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Pricing Workers (2) ---
	if cfg.Workers[pcs.TaskType].Enabled {
		handler := pcs.NewHandler(
			&pcs.Config{
				Timeout: config.GetDuration(cfg.Workers[pcs.TaskType].Timeout),
			},
			pricingEngine, log,
		)
		startWorker(zeebeClient, pcs.TaskType, cfg.Workers[pcs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[scs.TaskType].Enabled {
		handler := scs.NewHandler(
			&scs.Config{
				Timeout: config.GetDuration(cfg.Workers[scs.TaskType].Timeout),
			},
			pricingEngine, log,
		)
		startWorker(zeebeClient, scs.TaskType, cfg.Workers[scs.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Data Access Workers (1) ---
	if cfg.Workers[qdi.TaskType].Enabled {
		handler := qdi.NewHandler(
			&qdi.Config{
				Timeout:      config.GetDuration(cfg.Workers[qdi.TaskType].Timeout),
				DefaultIndex: cfg.Database.Elasticsearch.DealIndex,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, qdi.TaskType, cfg.Workers[qdi.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
