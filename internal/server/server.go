package server

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Solmidey/base-gas-coach/internal/client/basescan"
	"github.com/Solmidey/base-gas-coach/internal/client/openai"
	"github.com/Solmidey/base-gas-coach/internal/coach"
	"github.com/Solmidey/base-gas-coach/internal/gasprice"
	"github.com/Solmidey/base-gas-coach/internal/handlers"
	"github.com/Solmidey/base-gas-coach/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler definitions
var (
	analysisHandler *handlers.AnalysisHandler
	gasHandler      *handlers.GasHandler
)

// InitializeHandlers builds the service graph from environment settings.
// The explorer credential is required for the analysis endpoint to work;
// the model key and the RPC endpoint are optional and degrade to a skipped
// overlay and a 503 gas endpoint respectively.
func InitializeHandlers() {
	// Logger first so configuration findings are visible.
	logger.InitLogger()

	var analyzer *coach.Analyzer
	if apiKey := os.Getenv("BASESCAN_API_KEY"); apiKey != "" {
		explorer := newExplorerClient(apiKey)

		var chat coach.ChatService
		if openaiKey := os.Getenv("OPENAI_API_KEY"); openaiKey != "" {
			chat = newChatClient(openaiKey)
			logger.Info("model suggestion overlay enabled")
		} else {
			logger.Info("OPENAI_API_KEY not set, using rule-based suggestions only")
		}

		analyzer = coach.NewAnalyzer(explorer, chat)
	} else {
		logger.Warn("BASESCAN_API_KEY not set, analysis requests will fail until configured")
	}
	analysisHandler = handlers.NewAnalysisHandler(analysisService(analyzer))

	var gasService *gasprice.Service
	if rpcURL := os.Getenv("BASE_RPC_URL"); rpcURL != "" {
		svc, err := gasprice.NewService(context.Background(), rpcURL)
		if err != nil {
			logger.Warn("gas price service unavailable", zap.Error(err))
		} else {
			gasService = svc
		}
	} else {
		logger.Info("BASE_RPC_URL not set, live gas endpoint disabled")
	}
	gasHandler = handlers.NewGasHandler(gasPriceService(gasService))
}

// analysisService keeps a nil *Analyzer from turning into a non-nil
// interface inside the handler.
func analysisService(analyzer *coach.Analyzer) handlers.AnalysisService {
	if analyzer == nil {
		return nil
	}
	return analyzer
}

func gasPriceService(service *gasprice.Service) handlers.GasPriceService {
	if service == nil {
		return nil
	}
	return service
}

func newExplorerClient(apiKey string) *basescan.Client {
	if baseURL := os.Getenv("BASESCAN_BASE_URL"); baseURL != "" {
		return basescan.NewClient(apiKey, basescan.WithBaseURL(baseURL))
	}
	return basescan.NewClient(apiKey)
}

func newChatClient(apiKey string) *openai.Client {
	var opts []openai.Option
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	return openai.NewClient(apiKey, opts...)
}

// InitializeRoutes wires middleware and the route table.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(handlers.RequestID())

	if os.Getenv("GIN_MODE") != "release" {
		router.Use(handlers.LogRequest())
	}

	router.GET("/health", handlers.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/analysis", analysisHandler.AnalyzeWallet)
		v1.GET("/gas", gasHandler.CurrentGas)
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		corsConfig.AllowOrigins = strings.Split(originsEnv, ",")
	}

	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}
