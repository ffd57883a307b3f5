package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finquest-backend/internal/adapter/memory"
	"github.com/simaogato/finquest-backend/internal/config"
	"github.com/simaogato/finquest-backend/internal/domain"
	"github.com/simaogato/finquest-backend/internal/logger"
	"github.com/simaogato/finquest-backend/internal/usecase/dashboard"
	"github.com/simaogato/finquest-backend/internal/usecase/lesson"
	"github.com/simaogato/finquest-backend/internal/usecase/seeder"
	"github.com/simaogato/finquest-backend/internal/usecase/trading"
)

func main() {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	// 2. Initialize Stores
	userStore := memory.NewUserStore(log)
	catalog, err := memory.NewLessonCatalog(memory.DefaultLessons())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load lesson catalog")
	}

	unsubscribe := userStore.Subscribe(func(state domain.UserState, ok bool) {
		if !ok {
			log.Debug().Msg("user signed out")
			return
		}
		log.Debug().
			Int("xp", state.XP).
			Str("cash", state.Cash.StringFixed(2)).
			Msg("user state changed")
	})
	defer unsubscribe()

	// 3. Initialize Services (Use Cases)
	tradingService := trading.NewTradingService(userStore, log)
	lessonService := lesson.NewLessonService(catalog, userStore, log)
	dashboardService := dashboard.NewDashboardService(userStore)

	// Seed the session user
	sessionSeeder := seeder.NewSessionSeeder(userStore)
	user, err := sessionSeeder.Seed(ctx, seeder.SessionUser{
		DisplayName: cfg.UserName,
		Cash:        cfg.StartingCash,
		XP:          cfg.StartingXP,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed session user")
	}
	log.Info().Str("user", user.DisplayName).Msg("Session user seeded successfully")

	// 4. Run a session
	runSession(ctx, log, catalog, user.Portfolio, lessonService, tradingService, dashboardService)

	userStore.Clear()
	log.Info().Msg("Session finished")
}

// runSession plays a short scripted session: one lesson per category, a buy and a sell
func runSession(
	ctx context.Context,
	log zerolog.Logger,
	catalog domain.LessonCatalog,
	portfolio *domain.PortfolioValuation,
	lessonService *lesson.LessonService,
	tradingService *trading.TradingService,
	dashboardService *dashboard.DashboardService,
) {
	for _, category := range catalog.Categories() {
		next, index := lessonService.ResumeLesson(category)

		answers := make([]string, 0, len(next.Questions))
		for _, q := range next.Questions {
			answers = append(answers, q.CorrectAnswer)
		}

		result, err := lessonService.CompleteLesson(ctx, next.Category, index, answers)
		if err != nil {
			log.Error().Err(err).Str("category", category).Msg("Failed to complete lesson")
			continue
		}
		log.Info().
			Str("lesson", result.Lesson.Name).
			Int("xp_earned", result.XPEarned).
			Int("level", result.Level).
			Msg("Lesson completed")
	}

	if _, err := tradingService.Buy(ctx, domain.AssetClassStocks, decimal.NewFromInt(200)); err != nil {
		log.Warn().Err(err).Msg("Buy failed")
	}
	result, err := tradingService.Sell(ctx, domain.AssetClassCrypto, decimal.NewFromInt(150))
	if err != nil {
		log.Warn().Err(err).Msg("Sell failed")
	} else {
		portfolio.RecordHistorySample(result.TotalValue)
	}

	netWorth, err := dashboardService.GetNetWorth(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Net worth unavailable")
		return
	}

	card := dashboardService.GetProfileCard()
	log.Info().
		Str("user", card.DisplayName).
		Int("level", card.Level).
		Int("xp", card.XP).
		Str("cash", netWorth.Cash.StringFixed(2)).
		Str("invested", netWorth.Invested.StringFixed(2)).
		Str("net_worth", netWorth.Total.StringFixed(2)).
		Str("daily_change", netWorth.Daily.Percent.StringFixed(2)+"%").
		Bool("daily_up", netWorth.Daily.IsPositive).
		Msg("Dashboard")
}
