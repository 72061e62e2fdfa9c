package favorites

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
)

type stubFavoritesRepo struct {
	items []models.FavoriteItem
}

func (s *stubFavoritesRepo) ListBySession(ctx context.Context, sessionKey string) ([]models.FavoriteItem, error) {
	var out []models.FavoriteItem
	for _, item := range s.items {
		if item.SessionKey == sessionKey {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubFavoritesRepo) Add(ctx context.Context, item *models.FavoriteItem) error {
	s.items = append(s.items, *item)
	return nil
}

func (s *stubFavoritesRepo) Remove(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.SessionKey != sessionKey || item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

func (s *stubFavoritesRepo) Exists(ctx context.Context, sessionKey string, productID uuid.UUID) (bool, error) {
	for _, item := range s.items {
		if item.SessionKey == sessionKey && item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

type stubProductChecker struct {
	known map[uuid.UUID]bool
}

func (s *stubProductChecker) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Product{ID: id}, nil
}

func newTestService(t *testing.T, productID uuid.UUID) (Service, *stubFavoritesRepo) {
	t.Helper()
	repo := &stubFavoritesRepo{}
	svc, err := NewService(repo, &stubProductChecker{known: map[uuid.UUID]bool{productID: true}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestAddIsIdempotent(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc, repo := newTestService(t, productID)
	ctx := context.Background()

	if err := svc.Add(ctx, "sess-1", productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Add(ctx, "sess-1", productID); err != nil {
		t.Fatalf("re-add must be a no-op: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected single favorite, got %d", len(repo.items))
	}
}

func TestAddUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, uuid.New())
	err := svc.Add(context.Background(), "sess-1", uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, uuid.New())
	if err := svc.Remove(context.Background(), "sess-1", uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc, repo := newTestService(t, productID)
	ctx := context.Background()

	liked, err := svc.Toggle(ctx, "sess-1", productID)
	if err != nil || !liked {
		t.Fatalf("expected toggle on, got %v %v", liked, err)
	}
	liked, err = svc.Toggle(ctx, "sess-1", productID)
	if err != nil || liked {
		t.Fatalf("expected toggle off, got %v %v", liked, err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected empty favorites, got %d", len(repo.items))
	}
}

func TestListReturnsSessionIDsOnly(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc, repo := newTestService(t, productID)
	ctx := context.Background()

	if err := svc.Add(ctx, "sess-1", productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.items = append(repo.items, models.FavoriteItem{SessionKey: "sess-2", ProductID: uuid.New()})

	ids, err := svc.List(ctx, "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids.ProductIDs) != 1 || ids.ProductIDs[0] != productID {
		t.Fatalf("unexpected ids: %+v", ids)
	}
}
