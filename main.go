package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"synapse_server/auth"
	"synapse_server/config"
	"synapse_server/routes"
	"synapse_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return cfg.Build()
}

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Persistence and object storage
	logger.Info("initializing DynamoDB client")
	dynamoService := &services.DynamoService{Client: services.InitializeDynamoDBClient(cfg.AWSRegion)}

	s3Service, err := services.NewS3Service(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		logger.Fatal("failed to initialize S3 client", zap.Error(err))
	}

	// Oracle client, constructed once and injected everywhere
	gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Fatal("failed to initialize Gemini client", zap.Error(err))
	}

	oracleTimeout := time.Duration(cfg.OracleTimeoutSecs) * time.Second

	// Entity stores
	profileService := &services.ProfileService{Dynamo: dynamoService}
	assistantService := &services.AssistantService{Dynamo: dynamoService, Logger: logger}
	messageService := &services.MessageService{Dynamo: dynamoService, Media: s3Service, Logger: logger}
	matchService := &services.MatchService{Dynamo: dynamoService, Logger: logger}

	// Matchmaking and conversation engine
	oracle := &services.CompatibilityOracle{Generator: gemini, Timeout: oracleTimeout, Logger: logger}
	matchmaker := &services.MatchmakerService{
		Assistants:  assistantService,
		Matches:     matchService,
		Messages:    messageService,
		Oracle:      oracle,
		FanoutLimit: cfg.MatchFanoutLimit,
		Logger:      logger,
	}
	responder := &services.ResponderService{
		Messages:  messageService,
		Generator: gemini,
		Timeout:   oracleTimeout,
		Logger:    logger,
	}
	chatService := &services.ChatService{
		Assistants: assistantService,
		Messages:   messageService,
		Classifier: services.KeywordIntentClassifier{},
		Matchmaker: matchmaker,
		Responder:  responder,
		Logger:     logger,
	}

	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Synapse")
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	routes.RegisterUserRoutes(r)
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterAssistantRoutes(r, assistantService, chatService)
	routes.RegisterMessageRoutes(r, messageService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterS3Routes(r, s3Service)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", auth.UserIDHeader},
		AllowCredentials: true,
	}).Handler(auth.Middleware(r))

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
