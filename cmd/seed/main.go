package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TherapyBooking/internal/config"
	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	"github.com/m04kA/SMC-TherapyBooking/migrations"
	"github.com/m04kA/SMC-TherapyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
	"github.com/m04kA/SMC-TherapyBooking/pkg/migrator"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

const (
	defaultProviders  = 10
	requesterIDOffset = 1000
	bookingsPerDay    = 2
	seedDays          = 14
)

var dayLabels = []types.TimeString{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

// Сидер для локальной разработки: провайдеры 1..N получают случайный недельный шаблон,
// заказчики 1001.. - несколько бронирований на ближайшие две недели.
// ID должны существовать в сервисе каталога пользователей.
func main() {
	log := logger.NewNop()
	if l, err := logger.New("", "info"); err == nil {
		log = l
	}

	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	providers := defaultProviders
	if n, err := strconv.Atoi(os.Getenv("SEED_PROVIDERS")); err == nil && n > 0 {
		providers = n
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	if err := migrator.Up(db, migrations.FS, ".", log); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	wrapped := dbmetrics.Wrap(db, nil)
	availability := availabilityRepo.NewRepository(wrapped)
	bookings := bookingRepo.NewRepository(wrapped)
	detector := scheduling.NewDetector(bookings)

	faker := gofakeit.New(uint64(time.Now().UnixNano()))

	created := 0
	for providerID := int64(1); providerID <= int64(providers); providerID++ {
		template := randomTemplate(faker)
		saved, err := availability.Set(ctx, providerID, template)
		if err != nil {
			log.Fatal("Failed to save template for provider=%d: %v", providerID, err)
		}
		provider := &domain.Provider{
			ID:                providerID,
			Role:              domain.RoleProvider,
			AcceptingBookings: saved.AcceptingBookings,
			WeeklyTemplate:    saved.Template,
		}

		n, err := seedBookings(ctx, faker, bookings, detector, provider)
		if err != nil {
			log.Fatal("Failed to seed bookings for provider=%d: %v", providerID, err)
		}
		created += n
		log.Info("Seeded provider=%d: days=%d, bookings=%d", providerID, len(template), n)
	}

	log.Info("Seed complete: providers=%d, bookings=%d", providers, created)
}

// randomTemplate часть будних дней, минимум 2 метки в дне
func randomTemplate(faker *gofakeit.Faker) domain.WeeklyTemplate {
	template := domain.WeeklyTemplate{}
	for weekday := 1; weekday <= 5; weekday++ {
		if faker.Bool() && faker.Bool() {
			continue
		}
		slots := make([]types.TimeString, 0, len(dayLabels))
		for _, label := range dayLabels {
			if len(slots) < 2 || faker.Bool() {
				slots = append(slots, label)
			}
		}
		template = append(template, domain.DayTemplate{Weekday: weekday, Slots: slots})
	}

	normalized, err := domain.NormalizeTemplate(template)
	if err != nil {
		return domain.WeeklyTemplate{}
	}
	return normalized
}

func seedBookings(
	ctx context.Context,
	faker *gofakeit.Faker,
	bookings *bookingRepo.Repository,
	detector *scheduling.Detector,
	provider *domain.Provider,
) (int, error) {
	modes := []domain.Mode{domain.ModeVideo, domain.ModeChat, domain.ModeInPerson}
	statuses := []domain.BookingStatus{domain.StatusPending, domain.StatusApproved, domain.StatusCompleted}

	today := domain.DateOnly(time.Now())
	created := 0

	for day := 1; day <= seedDays; day++ {
		date := today.AddDate(0, 0, day)
		free, err := detector.FreeSlots(ctx, provider.ID, date, scheduling.DeriveCandidates(provider, date), domain.DefaultDurationMinutes)
		if err != nil {
			return created, err
		}

		for i := 0; i < bookingsPerDay && i < len(free); i++ {
			label := free[i]
			interval, err := domain.NewSlotInterval(date, label, domain.DefaultDurationMinutes)
			if err != nil {
				return created, err
			}

			reason := faker.Sentence(8)
			booking := &domain.Booking{
				RequesterID:     requesterIDOffset + int64(faker.IntRange(1, 50)),
				ProviderID:      provider.ID,
				Start:           interval.Start,
				End:             interval.End,
				CalendarDate:    date,
				SlotLabel:       label,
				DurationMinutes: domain.DefaultDurationMinutes,
				Mode:            modes[faker.IntRange(0, len(modes)-1)],
				Reason:          &reason,
				Status:          statuses[faker.IntRange(0, len(statuses)-1)],
			}
			if _, err := bookings.Create(ctx, booking); err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}
