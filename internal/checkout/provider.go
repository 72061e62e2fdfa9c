package checkout

import (
	"context"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
)

// PlacementProvider is the hand-off boundary for submitted drafts. Payment
// and fulfillment live behind this interface.
type PlacementProvider interface {
	Name() string
	Place(ctx context.Context, draft *models.OrderDraft) error
}

// LogPlacementProvider records the submission and accepts it. It stands in
// until a real payment integration is wired.
type LogPlacementProvider struct {
	logg *logger.Logger
}

// NewLogPlacementProvider builds the provider.
func NewLogPlacementProvider(logg *logger.Logger) *LogPlacementProvider {
	return &LogPlacementProvider{logg: logg}
}

func (p *LogPlacementProvider) Name() string { return "log" }

func (p *LogPlacementProvider) Place(ctx context.Context, draft *models.OrderDraft) error {
	if p.logg != nil {
		ctx = p.logg.WithFields(ctx, map[string]any{
			"draft_id": draft.ID.String(),
			"total":    draft.Total.StringFixed(2),
		})
		p.logg.Info(ctx, "order draft submitted")
	}
	return nil
}
