package main

import (
	"net/http"
	"strconv"

	"helpmate_server/config"
	"helpmate_server/controllers"
	"helpmate_server/routes"
	"helpmate_server/services"
	"helpmate_server/socket"
	"helpmate_server/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger(utils.LogConfig{Level: "info"})
		utils.L().Fatal().Err(err).Msg("Failed to load configuration")
	}
	utils.InitLogger(cfg.Log)

	// Initialize DynamoDB client and service
	utils.L().Info().Str("region", cfg.AWS.Region).Msg("Initializing DynamoDB client")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWS.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient}

	// Stores
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}
	sessionStore := &services.DynamoSessionStore{Dynamo: dynamoService}
	messageStore := &services.DynamoMessageStore{Dynamo: dynamoService}
	notificationStore := &services.DynamoNotificationStore{Dynamo: dynamoService}
	reviewStore := &services.DynamoReviewStore{Dynamo: dynamoService}

	// Connection registry shared by chat and notification sockets
	registry := socket.NewRegistry()

	// Services
	notificationService := &services.NotificationService{
		Notifications: notificationStore,
		Registry:      registry,
	}
	matchService := &services.MatchService{
		Matches:          matchStore,
		Notify:           notificationService,
		VisibilityWindow: cfg.Match.VisibilityWindow,
	}
	sessionService := &services.SessionService{
		Sessions:     sessionStore,
		Notify:       notificationService,
		LookupWindow: cfg.Session.LookupWindow,
	}
	chatService := &services.ChatService{
		Messages: messageStore,
		Sessions: sessionStore,
		Notify:   notificationService,
	}
	reviewService := &services.ReviewService{
		Reviews:  reviewStore,
		Sessions: sessionStore,
	}

	auth := utils.NewAuthVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	socketConfig := socket.Config{
		PingInterval:   cfg.WebSocket.PingInterval,
		PongWait:       cfg.WebSocket.PongWait,
		WriteWait:      cfg.WebSocket.WriteWait,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
	}
	chatSocketHandler := &socket.ChatSocketHandler{
		Registry: registry,
		Chat:     chatService,
		Auth:     auth,
		Config:   socketConfig,
	}
	notificationSocketHandler := &socket.NotificationSocketHandler{
		Registry: registry,
		Auth:     auth,
		Config:   socketConfig,
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Register routes
	routes.RegisterMatchRoutes(r, matchService, auth)
	routes.RegisterSessionRoutes(r, sessionService, auth)
	routes.RegisterChatRoutes(r, chatService, auth)
	routes.RegisterNotificationRoutes(r, notificationService, auth)
	routes.RegisterReviewRoutes(r, reviewService, auth)
	routes.RegisterSocketRoutes(r, chatSocketHandler, notificationSocketHandler)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	utils.L().Info().Str("addr", addr).Msg("Starting server")
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		utils.L().Fatal().Err(err).Msg("Server stopped")
	}
}
