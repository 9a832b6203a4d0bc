package credit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/logger"
)

// Service manages the credit package catalog and purchases
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListPackages(ctx context.Context) ([]Package, error) {
	return s.repo.ListPackages(ctx)
}

// CreatePackage adds a package. Admin only.
func (s *Service) CreatePackage(ctx context.Context, caller user.Actor, req *CreatePackageRequest) (*Package, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	pkg := &Package{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		CreditAmount: *req.CreditAmount,
		Price:        *req.Price,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("package_id", pkg.ID.String()).
		Int("credit_amount", pkg.CreditAmount).
		Int("price", pkg.Price).
		Msg("credit package created")
	return pkg, nil
}

// DeletePackage removes a package that was never purchased. Admin only.
func (s *Service) DeletePackage(ctx context.Context, caller user.Actor, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return s.repo.DeletePackage(ctx, id)
}

// Purchase records a purchase with the package's current credits and price
func (s *Service) Purchase(ctx context.Context, userID, packageID uuid.UUID) (*PurchaseRecord, error) {
	pkg, err := s.repo.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:               uuid.New(),
		UserID:           userID,
		CreditPackageID:  pkg.ID,
		PurchasedCredits: pkg.CreditAmount,
		PricePaid:        pkg.Price,
		PurchasedAt:      s.now().UTC(),
	}
	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", userID.String()).
		Str("package_id", pkg.ID.String()).
		Int("credits", p.PurchasedCredits).
		Msg("credit package purchased")

	return &PurchaseRecord{
		PurchasedCredits: p.PurchasedCredits,
		PricePaid:        p.PricePaid,
		Name:             pkg.Name,
		PurchasedAt:      p.PurchasedAt,
	}, nil
}

// ListPurchases returns the user's purchases, newest first
func (s *Service) ListPurchases(ctx context.Context, userID uuid.UUID) ([]PurchaseRecord, error) {
	return s.repo.ListPurchases(ctx, userID)
}
