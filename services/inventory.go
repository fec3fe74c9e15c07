package services

import (
	"errors"
	"fmt"
	"time"

	"agendabiz-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Inventory records stock-affecting events. Stock is authoritative here:
// the movement insert and the stock_qty change commit together, and a
// movement that would drive stock below zero is rejected.
type Inventory struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInventory(db *gorm.DB, log *zap.Logger) *Inventory {
	return &Inventory{db: db, log: log}
}

type RecordMovementInput struct {
	ProductID     uuid.UUID
	Type          string
	Qty           int
	ClientID      *uuid.UUID
	BuyerName     string
	AppointmentID *uuid.UUID
}

// RecordMovement writes one movement row. Sales snapshot the product's
// current unit price; consumption and adjustment carry no price fields.
// Sale and consumption decrement stock, adjustment restocks by qty.
func (inv *Inventory) RecordMovement(businessID uuid.UUID, in RecordMovementInput) (*models.ProductMovement, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be positive", ErrValidation)
	}

	switch in.Type {
	case models.MovementSale, models.MovementConsumption, models.MovementAdjustment:
	default:
		return nil, fmt.Errorf("%w: unknown movement type %q", ErrValidation, in.Type)
	}

	var created *models.ProductMovement

	err := inv.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("business_id = ? AND id = ?", businessID, in.ProductID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %s: %w", in.ProductID, ErrNotFound)
			}
			return err
		}

		if in.ClientID != nil {
			var client models.Client
			if err := tx.Where("business_id = ? AND id = ?", businessID, *in.ClientID).
				First(&client).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("client %s: %w", *in.ClientID, ErrNotFound)
				}
				return err
			}
		}

		if in.AppointmentID != nil {
			var appointment models.Appointment
			if err := tx.Where("business_id = ? AND id = ?", businessID, *in.AppointmentID).
				First(&appointment).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("appointment %s: %w", *in.AppointmentID, ErrNotFound)
				}
				return err
			}
		}

		movement := models.ProductMovement{
			BusinessID:    businessID,
			ProductID:     product.ID,
			Type:          in.Type,
			Qty:           in.Qty,
			ClientID:      in.ClientID,
			BuyerName:     in.BuyerName,
			AppointmentID: in.AppointmentID,
			OccurredAt:    time.Now(),
		}
		if in.Type == models.MovementSale {
			unit := product.PriceCents
			total := unit * int64(in.Qty)
			movement.UnitPriceCents = &unit
			movement.TotalCents = &total
		}

		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		switch in.Type {
		case models.MovementSale, models.MovementConsumption:
			// Relative decrement with the stock check in the same
			// statement: two concurrent movements cannot both read the old
			// quantity and oversell.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_qty >= ?", product.ID, in.Qty).
				Update("stock_qty", gorm.Expr("stock_qty - ?", in.Qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: insufficient stock (%d in stock, %d requested)",
					ErrValidation, product.StockQty, in.Qty)
			}
		case models.MovementAdjustment:
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock_qty", gorm.Expr("stock_qty + ?", in.Qty)).Error; err != nil {
				return err
			}
		}

		created = &movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	inv.log.Info("product movement recorded",
		zap.String("businessId", businessID.String()),
		zap.String("productId", in.ProductID.String()),
		zap.String("type", in.Type),
		zap.Int("qty", in.Qty),
	)
	return created, nil
}

// MovementRow is the movement log read model with display names joined in.
type MovementRow struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Qty            int       `json:"qty"`
	UnitPriceCents *int64    `json:"unitPriceCents"`
	TotalCents     *int64    `json:"totalCents"`
	ProductName    string    `json:"productName"`
	ClientName     *string   `json:"clientName"`
	BuyerName      string    `json:"buyerName"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// ListMovements returns the most recent movements, newest first.
func (inv *Inventory) ListMovements(businessID uuid.UUID, limit int) ([]MovementRow, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []MovementRow
	err := inv.db.Table("product_movements").
		Select(`product_movements.id, product_movements.type, product_movements.qty,
			product_movements.unit_price_cents, product_movements.total_cents,
			products.name AS product_name, clients.name AS client_name,
			product_movements.buyer_name, product_movements.occurred_at`).
		Joins("JOIN products ON products.id = product_movements.product_id").
		Joins("LEFT JOIN clients ON clients.id = product_movements.client_id").
		Where("product_movements.business_id = ?", businessID).
		Order("product_movements.occurred_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
