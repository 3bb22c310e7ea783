// Package server assembles the HTTP application from a set of repositories.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/keepup-loyalty/internal/config"
	"github.com/fairyhunter13/keepup-loyalty/internal/handler"
	"github.com/fairyhunter13/keepup-loyalty/internal/repository"
	"github.com/fairyhunter13/keepup-loyalty/internal/repository/memory"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
	appvalidator "github.com/fairyhunter13/keepup-loyalty/internal/validator"
)

// Repositories is everything the services read and write, plus the store behind them.
type Repositories struct {
	Driver       string
	Store        handler.Pinger
	Tiers        service.TierRepositoryInterface
	EarningRule  service.EarningRuleRepositoryInterface
	Customers    service.CustomerRepositoryInterface
	Rewards      service.RewardRepositoryInterface
	Activities   service.ActivityRepositoryInterface
	Reservations service.ReservationRepositoryInterface
	Templates    service.CampaignTemplateRepositoryInterface
}

// MemoryRepositories exposes an in-memory store.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Driver:       config.StoreMemory,
		Store:        s,
		Tiers:        s.Tiers(),
		EarningRule:  s.EarningRule(),
		Customers:    s.Customers(),
		Rewards:      s.Rewards(),
		Activities:   s.Activities(),
		Reservations: s.Reservations(),
		Templates:    s.Templates(),
	}
}

// PostgresRepositories exposes a PostgreSQL pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Driver:       config.StorePostgres,
		Store:        pool,
		Tiers:        repository.NewTierRepository(pool),
		EarningRule:  repository.NewEarningRuleRepository(pool),
		Customers:    repository.NewCustomerRepository(pool),
		Rewards:      repository.NewRewardRepository(pool),
		Activities:   repository.NewActivityRepository(pool),
		Reservations: repository.NewReservationRepository(pool),
		Templates:    repository.NewCampaignTemplateRepository(pool),
	}
}

// Options tune the application. The zero value is production-ready.
type Options struct {
	// Now overrides the clock used to decide "today". Defaults to time.Now.
	Now func() time.Time
	// AllowOrigins is the CORS allow-list for the dashboard front end. Defaults to "*".
	AllowOrigins string
	// DisableAccessLog turns off the request logger middleware.
	DisableAccessLog bool
}

// NewApp builds the Fiber application with every route registered.
func NewApp(repos Repositories, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "KeepUp Loyalty",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: allowOrigins(opts.AllowOrigins)}))
	if !opts.DisableAccessLog {
		app.Use(logger.New())
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	validate := appvalidator.New()

	loyaltyService := service.NewLoyaltyServiceWithClock(repos.Tiers, repos.EarningRule, repos.Customers, repos.Rewards, now)
	calendarService := service.NewCalendarServiceWithClock(repos.Activities, repos.Reservations, now)
	campaignService := service.NewCampaignServiceWithClock(repos.Templates, repos.Activities, now)

	app.Get("/health", handler.NewHealthHandler(repos.Store, repos.Driver).Check)

	api := app.Group("/api")
	handler.NewLoyaltyHandler(loyaltyService, validate).Register(api.Group("/loyalty"))
	handler.NewCalendarHandler(calendarService, validate).Register(api)
	handler.NewReservationHandler(calendarService, validate).Register(api)
	handler.NewCampaignHandler(campaignService, validate).Register(api.Group("/campaigns"))

	return app
}

func allowOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}
