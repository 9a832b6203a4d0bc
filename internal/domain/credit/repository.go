package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/livefit/livefit-api/internal/pkg/database"
)

type Repository interface {
	Ledger
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*Package, error)
	CreatePackage(ctx context.Context, pkg *Package) error
	DeletePackage(ctx context.Context, id uuid.UUID) error
	CreatePurchase(ctx context.Context, p *Purchase) error
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]PurchaseRecord, error)
	PackageTotals(ctx context.Context) (Totals, error)
}

// PostgresRepository runs on either the pool or an open transaction.
type PostgresRepository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var total int
	err := sqlx.GetContext(ctx, r.db, &total, `
		SELECT COALESCE(SUM(purchased_credits), 0)
		FROM credit_purchases
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("sum purchased credits: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) CountActiveBookings(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `
		SELECT COUNT(*)
		FROM course_bookings
		WHERE user_id = $1 AND cancelled_at IS NULL
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("count active bookings: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) ListPackages(ctx context.Context) ([]Package, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	packages := []Package{}
	err := sqlx.SelectContext(ctx, r.db, &packages, `
		SELECT id, name, credit_amount, price, created_at
		FROM credit_packages
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list credit packages: %w", err)
	}
	return packages, nil
}

func (r *PostgresRepository) GetPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var pkg Package
	err := sqlx.GetContext(ctx, r.db, &pkg, `
		SELECT id, name, credit_amount, price, created_at
		FROM credit_packages
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credit package: %w", err)
	}
	return &pkg, nil
}

func (r *PostgresRepository) CreatePackage(ctx context.Context, pkg *Package) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credit_packages (id, name, credit_amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, pkg.ID, pkg.Name, pkg.CreditAmount, pkg.Price, pkg.CreatedAt)
	if database.IsUniqueViolation(err, "credit_packages_name_key") {
		return ErrPackageNameTaken
	}
	if err != nil {
		return fmt.Errorf("create credit package: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM credit_packages WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return ErrPackageInUse
	}
	if err != nil {
		return fmt.Errorf("delete credit package: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credit package: %w", err)
	}
	if rows == 0 {
		return ErrPackageNotFound
	}
	return nil
}

// CreatePurchase appends a purchase. There is no update or delete.
func (r *PostgresRepository) CreatePurchase(ctx context.Context, p *Purchase) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credit_purchases (id, user_id, credit_package_id, purchased_credits, price_paid, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.UserID, p.CreditPackageID, p.PurchasedCredits, p.PricePaid, p.PurchasedAt)
	if database.IsForeignKeyViolation(err) {
		return ErrPackageNotFound
	}
	if err != nil {
		return fmt.Errorf("create credit purchase: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListPurchases(ctx context.Context, userID uuid.UUID) ([]PurchaseRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	records := []PurchaseRecord{}
	err := sqlx.SelectContext(ctx, r.db, &records, `
		SELECT cp.purchased_credits, cp.price_paid, pkg.name, cp.purchased_at
		FROM credit_purchases cp
		JOIN credit_packages pkg ON pkg.id = cp.credit_package_id
		WHERE cp.user_id = $1
		ORDER BY cp.purchased_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list credit purchases: %w", err)
	}
	return records, nil
}

func (r *PostgresRepository) PackageTotals(ctx context.Context) (Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var totals Totals
	err := sqlx.GetContext(ctx, r.db, &totals, `
		SELECT COALESCE(SUM(price), 0) AS total_price,
		       COALESCE(SUM(credit_amount), 0) AS total_credit_amount
		FROM credit_packages
	`)
	if err != nil {
		return Totals{}, fmt.Errorf("credit package totals: %w", err)
	}
	return totals, nil
}
