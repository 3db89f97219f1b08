package cmd

import (
	"context"
	"fmt"
	"math"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/logging"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
)

const kmPerDegree = 111.32

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register verified riders and place pending orders around the station",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(false); err != nil {
			return err
		}
		riders, _ := cmd.Flags().GetInt("riders")
		orders, _ := cmd.Flags().GetInt("orders")
		radius, _ := cmd.Flags().GetFloat64("radius-km")

		logger := logging.NewLogger(cfg.LogLevel)
		db, err := OpenDatabase(cfg)
		if err != nil {
			return err
		}
		root := NewCompositionRoot(cfg, db, logger)
		defer closeRoot(root, logger)

		station, err := cfg.Station()
		if err != nil {
			return err
		}
		seeder := NewSeeder(SeedHandlers{
			RegisterRider:     root.CreateRegisterRiderCommandHandler(),
			ModerateRider:     root.CreateModerateRiderCommandHandler(),
			UpdateRiderStatus: root.CreateUpdateRiderStatusCommandHandler(),
			CreateOrder:       root.CreateCreateOrderCommandHandler(),
		}, station, radius)

		result, err := seeder.Seed(cmd.Context(), riders, orders)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %d rider(s), placed %d order(s)\n", len(result.Riders), len(result.Orders))
		return nil
	},
}

type (
	riderRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterRiderCommand) (*rider.Rider, error)
	}
	riderModerator interface {
		Handle(ctx context.Context, cmd commands.ModerateRiderCommand) (*rider.Rider, error)
	}
	riderStatusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateRiderStatusCommand) (*rider.Rider, error)
	}
	orderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
)

// SeedHandlers are the use cases the seeder drives.
type SeedHandlers struct {
	RegisterRider     riderRegistrar
	ModerateRider     riderModerator
	UpdateRiderStatus riderStatusUpdater
	CreateOrder       orderCreator
}

// SeedResult lists what was created.
type SeedResult struct {
	Riders []kernel.UUID
	Orders []order.ID
}

// Seeder fills a database with demo data through the regular use cases.
type Seeder struct {
	handlers SeedHandlers
	station  kernel.Location
	radiusKm float64
	fake     faker.Faker
}

func NewSeeder(handlers SeedHandlers, station kernel.Location, radiusKm float64) *Seeder {
	return &Seeder{
		handlers: handlers,
		station:  station,
		radiusKm: radiusKm,
		fake:     faker.New(),
	}
}

var (
	seedVehicles = []string{string(rider.Motorcycle), string(rider.Motorcycle), string(rider.Bicycle), string(rider.Car)}
	seedProducts = []struct {
		name  string
		price float64
	}{
		{"6kg cylinder refill", 85},
		{"14.5kg cylinder refill", 180},
		{"12.5kg cylinder refill", 160},
		{"Regulator", 120},
	}
)

// Seed registers riders, verifies them and puts them online near the station,
// then places pending orders.
func (s *Seeder) Seed(ctx context.Context, riders, orders int) (SeedResult, error) {
	var result SeedResult

	for i := 0; i < riders; i++ {
		id, err := s.seedRider(ctx)
		if err != nil {
			return result, fmt.Errorf("seed rider %d: %w", i+1, err)
		}
		result.Riders = append(result.Riders, id)
	}

	for i := 0; i < orders; i++ {
		id, err := s.seedOrder(ctx)
		if err != nil {
			return result, fmt.Errorf("seed order %d: %w", i+1, err)
		}
		result.Orders = append(result.Orders, id)
	}

	return result, nil
}

func (s *Seeder) seedRider(ctx context.Context) (kernel.UUID, error) {
	vehicle, err := rider.ParseVehicleType(s.fake.RandomStringElement(seedVehicles))
	if err != nil {
		return kernel.UUID{}, err
	}

	registered, err := s.handlers.RegisterRider.Handle(ctx, commands.NewRegisterRiderCommand(rider.Registration{
		Name:          s.fake.Person().Name(),
		Phone:         s.phone(),
		Email:         s.fake.Internet().Email(),
		VehicleType:   vehicle,
		VehicleNumber: fmt.Sprintf("GR-%04d-%02d", s.fake.IntBetween(1000, 9999), s.fake.IntBetween(10, 24)),
		LicenseNumber: fmt.Sprintf("DL-%08d", s.fake.IntBetween(10000000, 99999999)),
		AreaCoverage:  s.fake.Address().City(),
	}))
	if err != nil {
		return kernel.UUID{}, err
	}
	id := registered.ID()

	verify, err := commands.NewModerateRiderCommand(id, commands.ActionVerify)
	if err != nil {
		return kernel.UUID{}, err
	}
	if _, err := s.handlers.ModerateRider.Handle(ctx, verify); err != nil {
		return kernel.UUID{}, err
	}

	location, err := s.location()
	if err != nil {
		return kernel.UUID{}, err
	}
	online, err := commands.NewUpdateRiderStatusCommand(id, rider.Available, &location)
	if err != nil {
		return kernel.UUID{}, err
	}
	if _, err := s.handlers.UpdateRiderStatus.Handle(ctx, online); err != nil {
		return kernel.UUID{}, err
	}

	return id, nil
}

func (s *Seeder) seedOrder(ctx context.Context) (order.ID, error) {
	customer, err := order.NewCustomer(
		s.fake.Person().Name(),
		s.phone(),
		s.fake.Internet().Email(),
		s.fake.Address().StreetAddress(),
	)
	if err != nil {
		return "", err
	}

	product := seedProducts[s.fake.IntBetween(0, len(seedProducts)-1)]
	item, err := order.NewItem(product.name, s.fake.IntBetween(1, 3), product.price)
	if err != nil {
		return "", err
	}

	location, err := s.location()
	if err != nil {
		return "", err
	}
	cmd, err := commands.NewCreateOrderCommand(customer, []order.Item{item}, &location)
	if err != nil {
		return "", err
	}

	o, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return o.ID(), nil
}

func (s *Seeder) phone() string {
	return fmt.Sprintf("+23324%07d", s.fake.IntBetween(0, 9999999))
}

// location picks a point within radiusKm of the station.
func (s *Seeder) location() (kernel.Location, error) {
	meters := int(s.radiusKm * 1000)
	if meters <= 0 {
		return s.station, nil
	}
	distance := float64(s.fake.IntBetween(0, meters)) / 1000
	bearing := float64(s.fake.IntBetween(0, 359)) * math.Pi / 180

	lat := s.station.Latitude() + distance*math.Cos(bearing)/kmPerDegree
	lon := s.station.Longitude() + distance*math.Sin(bearing)/(kmPerDegree*math.Cos(s.station.Latitude()*math.Pi/180))
	return kernel.NewLocation(lat, lon)
}
