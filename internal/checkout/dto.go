package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanakin/carsi-storefront/pkg/db/models"
	"github.com/ozanakin/carsi-storefront/pkg/enums"
	"github.com/ozanakin/carsi-storefront/pkg/types"
)

// CustomerInfoInput is the contact step payload.
type CustomerInfoInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// AddressInput is the address step payload.
type AddressInput struct {
	FullName   string  `json:"full_name" validate:"required"`
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city" validate:"required"`
	District   *string `json:"district,omitempty"`
	PostalCode string  `json:"postal_code" validate:"required"`
	Country    string  `json:"country" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
}

// ShippingSelectionInput is the shipping step payload.
type ShippingSelectionInput struct {
	MethodID string `json:"method_id" validate:"required"`
}

// DraftItemView is one frozen line of a committed draft.
type DraftItemView struct {
	ProductID   uuid.UUID        `json:"product_id"`
	VariantID   *uuid.UUID       `json:"variant_id,omitempty"`
	Title       string           `json:"title"`
	VariantName *string          `json:"variant_name,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	Quantity    int              `json:"quantity"`
}

// DraftView is the read projection of a committed order draft.
type DraftView struct {
	ID               uuid.UUID          `json:"id"`
	Status           enums.DraftStatus  `json:"status"`
	Totals           types.Totals       `json:"totals"`
	CustomerInfo     types.CustomerInfo `json:"customer_info"`
	ShippingAddress  types.Address      `json:"shipping_address"`
	ShippingMethodID string             `json:"shipping_method_id"`
	CouponCode       *string            `json:"coupon_code,omitempty"`
	Items            []DraftItemView    `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
}

func (i CustomerInfoInput) toCustomerInfo() types.CustomerInfo {
	return types.CustomerInfo{Name: i.Name, Email: i.Email, Phone: i.Phone}
}

func (i AddressInput) toAddress() types.Address {
	return types.Address{
		FullName:   i.FullName,
		Line1:      i.Line1,
		Line2:      i.Line2,
		City:       i.City,
		District:   i.District,
		PostalCode: i.PostalCode,
		Country:    i.Country,
		Phone:      i.Phone,
	}
}

func toDraftView(draft *models.OrderDraft) DraftView {
	items := make([]DraftItemView, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, DraftItemView{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			Title:       item.Title,
			VariantName: item.VariantName,
			UnitPrice:   item.UnitPrice,
			SalePrice:   item.SalePrice,
			Quantity:    item.Quantity,
		})
	}
	return DraftView{
		ID:     draft.ID,
		Status: draft.Status,
		Totals: types.Totals{
			Subtotal: draft.Subtotal,
			Shipping: draft.Shipping,
			Discount: draft.Discount,
			Total:    draft.Total,
		},
		CustomerInfo:     draft.CustomerInfo,
		ShippingAddress:  draft.ShippingAddress,
		ShippingMethodID: draft.ShippingMethodID,
		CouponCode:       draft.CouponCode,
		Items:            items,
		CreatedAt:        draft.CreatedAt,
	}
}
