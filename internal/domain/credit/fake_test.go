package credit

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

type fakeRepo struct {
	packages  map[uuid.UUID]*Package
	purchases []Purchase
	active    map[uuid.UUID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{packages: map[uuid.UUID]*Package{}, active: map[uuid.UUID]int{}}
}

func (f *fakeRepo) addPackage(name string, credits, price int) *Package {
	p := &Package{ID: uuid.New(), Name: name, CreditAmount: credits, Price: price}
	f.packages[p.ID] = p
	return p
}

func (f *fakeRepo) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	total := 0
	for _, p := range f.purchases {
		if p.UserID == userID {
			total += p.PurchasedCredits
		}
	}
	return total, nil
}

func (f *fakeRepo) CountActiveBookings(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.active[userID], nil
}

func (f *fakeRepo) ListPackages(ctx context.Context) ([]Package, error) {
	out := []Package{}
	for _, p := range f.packages {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) GetPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, ErrPackageNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) CreatePackage(ctx context.Context, pkg *Package) error {
	for _, p := range f.packages {
		if p.Name == pkg.Name {
			return ErrPackageNameTaken
		}
	}
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakeRepo) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.packages[id]; !ok {
		return ErrPackageNotFound
	}
	for _, p := range f.purchases {
		if p.CreditPackageID == id {
			return ErrPackageInUse
		}
	}
	delete(f.packages, id)
	return nil
}

func (f *fakeRepo) CreatePurchase(ctx context.Context, p *Purchase) error {
	f.purchases = append(f.purchases, *p)
	return nil
}

func (f *fakeRepo) ListPurchases(ctx context.Context, userID uuid.UUID) ([]PurchaseRecord, error) {
	out := []PurchaseRecord{}
	for _, p := range f.purchases {
		if p.UserID != userID {
			continue
		}
		name := ""
		if pkg, ok := f.packages[p.CreditPackageID]; ok {
			name = pkg.Name
		}
		out = append(out, PurchaseRecord{PurchasedCredits: p.PurchasedCredits, PricePaid: p.PricePaid, Name: name, PurchasedAt: p.PurchasedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedAt.After(out[j].PurchasedAt) })
	return out, nil
}

func (f *fakeRepo) PackageTotals(ctx context.Context) (Totals, error) {
	var t Totals
	for _, p := range f.packages {
		t.Price += int64(p.Price)
		t.CreditAmount += int64(p.CreditAmount)
	}
	return t, nil
}
