package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/settlements-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/settlements-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/events"
	"github.com/cmlabs-hris/settlements-backend-go/internal/repository/postgresql"
	settlementService "github.com/cmlabs-hris/settlements-backend-go/internal/service/settlement"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "settlements-cmlabs"),
		slog.String("env", cfg.App.Env),
	)

	userRepo := postgresql.NewUserRepository(db)
	worklogRepo := postgresql.NewWorkLogRepository(db)
	remittanceRepo := postgresql.NewRemittanceRepository(db)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	settlementSvc := settlementService.NewSettlementService(
		db,
		userRepo,
		worklogRepo,
		remittanceRepo,
		publisher,
		logger,
	)

	settlementHandler := appHTTP.NewSettlementHandler(settlementSvc)

	router := appHTTP.NewRouter(cfg.App.Env, settlementHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
