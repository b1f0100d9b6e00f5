package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"market/config"
	"market/internal/domain/entity"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/infra/memstore"
	"market/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Marketplace: &config.MarketplaceConfig{
			CancelReasonMinLen: 5,
			CancelReasonMaxLen: 200,
		},
	}
}

// recordingPublisher collects every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType)
	}

	return types
}

// fakeQRService avoids PNG rendering in service-level tests.
type fakeQRService struct{}

func (fakeQRService) GenerateProductQR(productID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + productID.String()), nil
}

func (fakeQRService) ParseProductQR(qrData string) (uuid.UUID, error) {
	id, ok := strings.CutPrefix(qrData, "qr:")
	if !ok {
		return uuid.Nil, errors.New("unrecognized QR payload")
	}

	return uuid.Parse(id)
}

// marketFixtures wires every service against one shared in-memory store,
// the same way the Fx graph does in production.
type marketFixtures struct {
	store    *memstore.Store
	userRepo repository.UserRepository

	users         usecase.UserUsecase
	products      usecase.ProductUsecase
	orders        usecase.OrderUsecase
	reviews       usecase.ReviewUsecase
	notifications usecase.NotificationUsecase
	admin         usecase.AdminUsecase

	publisher *recordingPublisher
}

func createMarketFixtures(t *testing.T) *marketFixtures {
	t.Helper()

	store := memstore.New()
	logger := newDiscardLogger()
	cfg := newTestConfig()

	userRepo := memstore.NewUserRepository(store)
	productRepo := memstore.NewProductRepository(store)
	orderRepo := memstore.NewOrderRepository(store)
	reviewRepo := memstore.NewReviewRepository(store)
	messageRepo := memstore.NewMessageRepository(store)
	appealRepo := memstore.NewAppealRepository(store)

	notifier := NewNotificationService(NotificationServiceParams{
		MessageRepo: messageRepo,
		Logger:      logger,
	})
	publisher := &recordingPublisher{}
	locks := NewAggregateLocks()

	return &marketFixtures{
		store:    store,
		userRepo: userRepo,
		users: NewUserService(UserServiceParams{
			UserRepo:     userRepo,
			Hasher:       staticHasher{},
			TokenService: staticTokenService{},
			Notifier:     notifier,
			Logger:       logger,
		}),
		products: NewProductService(ProductServiceParams{
			UserRepo:    userRepo,
			ProductRepo: productRepo,
			QRService:   fakeQRService{},
			Locks:       locks,
			Logger:      logger,
		}),
		orders: NewOrderService(OrderServiceParams{
			UserRepo:    userRepo,
			ProductRepo: productRepo,
			OrderRepo:   orderRepo,
			Notifier:    notifier,
			Publisher:   publisher,
			Locks:       locks,
			Config:      cfg,
			Logger:      logger,
		}),
		reviews: NewReviewService(ReviewServiceParams{
			UserRepo:   userRepo,
			OrderRepo:  orderRepo,
			ReviewRepo: reviewRepo,
			Notifier:   notifier,
			Locks:      locks,
			Logger:     logger,
		}),
		notifications: notifier,
		admin: NewAdminService(AdminServiceParams{
			UserRepo:   userRepo,
			AppealRepo: appealRepo,
			Notifier:   notifier,
			Locks:      locks,
			Logger:     logger,
		}),
		publisher: publisher,
	}
}

// staticHasher sidesteps bcrypt cost in service-level tests.
type staticHasher struct{}

func (staticHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (staticHasher) Check(password, hash string) bool { return "hashed:"+password == hash }

func (staticHasher) ValidatePasswordStrength(string) error { return nil }

// staticTokenService issues fixed tokens in service-level tests.
type staticTokenService struct{}

func (staticTokenService) GenerateTokens(uuid.UUID, []string) (string, string, error) {
	return "access-token", "refresh-token", nil
}

func (staticTokenService) ValidateToken(string, string) (*jwt.Token, error) {
	return nil, nil
}

func (staticTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

func (f *marketFixtures) createUser(t *testing.T, username string, roles ...entity.Role) *entity.User {
	t.Helper()

	if len(roles) == 0 {
		roles = []entity.Role{entity.RoleBuyer}
	}
	user := entity.NewUser(username, username+"@example.com", "hashed:Password123!", roles)
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user
}

func (f *marketFixtures) createBuyer(t *testing.T, username string) *entity.User {
	return f.createUser(t, username, entity.RoleBuyer)
}

func (f *marketFixtures) createSeller(t *testing.T, username string) *entity.User {
	return f.createUser(t, username, entity.RoleBuyer, entity.RoleSeller)
}

func (f *marketFixtures) createAdmin(t *testing.T, username string) *entity.User {
	return f.createUser(t, username, entity.RoleAdmin)
}

func (f *marketFixtures) createListing(t *testing.T, seller *entity.User, title string, priceCents int64) *entity.Product {
	t.Helper()

	product, err := f.products.CreateProduct(context.Background(), seller.ID, &usecase.CreateProductInput{
		Title:      title,
		PriceCents: priceCents,
		Category:   "electronics",
		Condition:  "used - good",
	})
	require.NoError(t, err)

	return product
}

func newID() uuid.UUID {
	return uuid.New()
}

func withPrice(priceCents int64) *usecase.UpdateProductInput {
	return &usecase.UpdateProductInput{PriceCents: &priceCents}
}

func (f *marketFixtures) reputationOf(t *testing.T, userID uuid.UUID) int {
	t.Helper()

	user, err := f.users.GetProfile(context.Background(), userID)
	require.NoError(t, err)

	return user.Reputation
}
