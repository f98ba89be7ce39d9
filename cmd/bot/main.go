package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	walog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/leetcode-tracker/internal/app/usecase"
	"github.com/fardannozami/leetcode-tracker/internal/config"
	"github.com/fardannozami/leetcode-tracker/internal/infra/database"
	"github.com/fardannozami/leetcode-tracker/internal/infra/httpapi"
	"github.com/fardannozami/leetcode-tracker/internal/infra/leetcode"
	"github.com/fardannozami/leetcode-tracker/internal/infra/wa"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Logger
	logger := walog.Stdout("Client", cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database & Repositories
	dsn := database.SQLiteDSN(cfg.SQLitePath)
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	db, dialect, err := database.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	activityRepo := database.NewActivityRepository(db, dialect)
	problemRepo := database.NewProblemRepository(db, dialect)
	source := leetcode.NewClient(cfg.LeetCodeURL, cfg.LeetCodeTimeout, cfg.SyncPageSize, logger.Sub("LeetCode"))

	// 4. Use Cases
	streakUC := usecase.NewGetStreakUsecase(activityRepo)
	statsUC := usecase.NewGetStatsUsecase(activityRepo)
	dailyUC := usecase.NewGetDailyChallengeUsecase(problemRepo)
	solveUC := usecase.NewRecordSolveUsecase(activityRepo, problemRepo)
	leaderboardUC := usecase.NewGetLeaderboardUsecase(activityRepo)
	handleMessageUC := usecase.NewHandleMessageUsecase(solveUC, streakUC, statsUC, dailyUC, leaderboardUC)
	syncDailyUC := usecase.NewSyncDailyChallengeUsecase(source, problemRepo, logger.Sub("Sync"))

	// 5. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, wa.ReplyOptions{
		MinDelay:   time.Duration(cfg.ReplyDelayMinMs) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.ReplyDelayMaxMs) * time.Millisecond,
		ShowTyping: cfg.ShowTyping,
	}, logger)

	// 6. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, msg wa.IncomingMessage) {
		if cfg.GroupID != "" && msg.Chat.String() != cfg.GroupID {
			return
		}

		// Resolve LIDs so the same person is tracked under one id.
		userID := msg.Sender.User
		if wa.IsLID(msg.Sender) {
			userID = activityRepo.ResolveLIDToPhone(ctx, msg.Sender.User)
		}

		pushName := msg.PushName
		if pushName == "" {
			pushName = "Unknown"
		}

		logger.Debugf("Message from %s (%s): %s", pushName, userID, msg.Text)

		response, err := handleMessageUC.Execute(ctx, userID, pushName, msg.Text, cfg.Today())
		if err != nil {
			logger.Errorf("Error handling message: %v", err)
			return
		}
		if response == "" {
			return
		}
		if err := waService.Reply(ctx, msg.Chat, response); err != nil {
			logger.Errorf("Failed to send response: %v", err)
		}
	})

	// 7. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	// The device store lives in the SQLite file, even when activity data is in PostgreSQL.
	if err := waService.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	// 8. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			if err := waService.Connect(); err != nil {
				log.Fatalf("Failed to connect for pairing: %v", err)
			}

			log.Println("Not logged in. Attempting to pair with phone:", cfg.BotPhone)
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				log.Printf("Failed to generate pair code: %v", err)
			} else {
				log.Println("==================================================")
				log.Printf("PAIR CODE: %s", code)
				log.Println("==================================================")
				log.Println("Please verify this code on your WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			log.Println("Not logged in. BOT_PHONE not set. Printing QR...")
			// PrintQR handles GetQRChannel AND Connect() internally to ensure no race condition
			go waService.PrintQR(ctx)
		}
	} else {
		if err := waService.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		log.Println("Client is already logged in.")
	}

	// 9. HTTP API
	handler := httpapi.NewHandler(streakUC, statsUC, dailyUC, problemRepo, cfg.Today, logger.Sub("API"))
	limiter := rate.NewLimiter(rate.Limit(cfg.APIRateLimitRPS), cfg.APIRateLimitBurst)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler, cfg.APICORSOrigins, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("API listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// 10. Scheduled daily challenge sync
	if cfg.DailySyncInterval > 0 {
		job := &dailyJob{
			sync:     syncDailyUC,
			send:     waService.SendText,
			groupID:  cfg.GroupID,
			announce: cfg.AnnounceDaily,
			today:    cfg.Today,
			log:      logger.Sub("Daily"),
		}
		go job.loop(ctx, cfg.DailySyncInterval)
	}

	log.Println("Bot is running... Press Ctrl+C to exit.")

	// 11. Wait for OS Signal
	<-ctx.Done()

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("API shutdown: %v", err)
	}
	waService.Disconnect()
}
