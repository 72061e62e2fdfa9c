package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
)

// ProductSummary is the browse-grid projection of a product.
type ProductSummary struct {
	ID             uuid.UUID        `json:"id"`
	SKU            string           `json:"sku"`
	Title          string           `json:"title"`
	Brand          string           `json:"brand"`
	CategoryID     string           `json:"category_id"`
	Price          decimal.Decimal  `json:"price"`
	SalePrice      *decimal.Decimal `json:"sale_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	Currency       string           `json:"currency"`
	Stock          int              `json:"stock"`
	IsActive       bool             `json:"is_active"`
	Tags           []string         `json:"tags"`
	Image          *string          `json:"image,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ProductDetail adds the full description, gallery, and variants.
type ProductDetail struct {
	ProductSummary
	Description string       `json:"description"`
	Images      []string     `json:"images"`
	Variants    []VariantDTO `json:"variants,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// VariantDTO mirrors a product variant row.
type VariantDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Value string    `json:"value"`
	Stock int       `json:"stock"`
}

func toSummary(p models.Product) ProductSummary {
	var image *string
	if len(p.Images) > 0 {
		first := p.Images[0]
		image = &first
	}
	return ProductSummary{
		ID:             p.ID,
		SKU:            p.SKU,
		Title:          p.Title,
		Brand:          p.Brand,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		SalePrice:      p.SalePrice,
		EffectivePrice: p.EffectivePrice(),
		Currency:       p.Currency,
		Stock:          p.Stock,
		IsActive:       p.IsActive,
		Tags:           append([]string{}, p.Tags...),
		Image:          image,
		CreatedAt:      p.CreatedAt,
	}
}

func toDetail(p models.Product) ProductDetail {
	variants := make([]VariantDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantDTO{
			ID:    v.ID,
			Name:  v.Name,
			Value: v.Value,
			Stock: v.Stock,
		})
	}
	return ProductDetail{
		ProductSummary: toSummary(p),
		Description:    p.Description,
		Images:         append([]string{}, p.Images...),
		Variants:       variants,
		UpdatedAt:      p.UpdatedAt,
	}
}

// VariantInput carries variant fields for admin writes.
type VariantInput struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
	Stock int    `json:"stock" validate:"min=0"`
}

// CreateProductInput is the admin payload for a new listing.
type CreateProductInput struct {
	SKU         string           `json:"sku" validate:"required"`
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	CategoryID  string           `json:"category_id" validate:"required"`
	Tags        []string         `json:"tags"`
	Images      []string         `json:"images"`
	Price       decimal.Decimal  `json:"price" validate:"required"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Currency    string           `json:"currency"`
	Stock       int              `json:"stock" validate:"min=0"`
	IsActive    *bool            `json:"is_active,omitempty"`
	Variants    []VariantInput   `json:"variants,omitempty"`
}

// UpdateProductInput is the admin payload for editing a listing. Nil fields
// keep their stored value.
type UpdateProductInput struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	ClearSale   bool             `json:"clear_sale,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}
