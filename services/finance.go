package services

import (
	"errors"
	"time"

	"agendabiz-backend/models"
	"agendabiz-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Finance derives per-professional and per-business money summaries from
// the immutable execution and movement ledgers. Pure read-side computation,
// nothing derived is persisted.
type Finance struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFinance(db *gorm.DB, log *zap.Logger) *Finance {
	return &Finance{db: db, log: log}
}

// CommissionForExecution rounds per execution, not on the aggregate, so
// many small transactions do not accumulate a systematic rounding bias.
func CommissionForExecution(priceCents int64, percentage float64) int64 {
	return decimal.NewFromInt(priceCents).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// ComputeProfessionalEarnings returns what the professional is owed for the
// given executions: the per-execution commission sum for percentage
// compensation, or the fixed salary regardless of volume.
func (f *Finance) ComputeProfessionalEarnings(professional *models.Professional, executions []models.ServiceExecution) int64 {
	switch professional.CompensationType {
	case models.CompensationSalary:
		if professional.SalaryCents == nil {
			f.log.Warn("salaried professional has no salary configured",
				zap.String("professionalId", professional.ID.String()))
			return 0
		}
		return *professional.SalaryCents

	case models.CompensationPercentage:
		if professional.CommissionPercentage == nil {
			f.log.Warn("percentage professional has no commission configured",
				zap.String("professionalId", professional.ID.String()))
			return 0
		}
		var total int64
		for _, execution := range executions {
			total += CommissionForExecution(execution.ServicePriceCents, *professional.CommissionPercentage)
		}
		return total

	default:
		// Data-integrity issue: report it, contribute nothing.
		f.log.Warn("professional has unknown compensation type",
			zap.String("professionalId", professional.ID.String()),
			zap.String("compensationType", professional.CompensationType))
		return 0
	}
}

// ProfessionalLine is one row of the commission report, keyed by
// professional id. Two professionals sharing a name stay separate.
type ProfessionalLine struct {
	ProfessionalID   uuid.UUID `json:"professionalId"`
	Name             string    `json:"name"`
	CompensationType string    `json:"compensationType"`
	ExecutionCount   int       `json:"executionCount"`
	RevenueCents     int64     `json:"revenueCents"`
	EarningsCents    int64     `json:"earningsCents"`
}

type BusinessSummary struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	ServicesRevenueCents int64 `json:"servicesRevenueCents"`
	ProductsRevenueCents int64 `json:"productsRevenueCents"`
	TotalRevenueCents    int64 `json:"totalRevenueCents"`

	// Commissions of percentage-based professionals only; salaried pay is
	// a fixed cost, not deducted from gross the same way.
	TotalCommissionsCents int64 `json:"totalCommissionsCents"`
	NetCents              int64 `json:"netCents"`

	Professionals []ProfessionalLine `json:"professionals"`
}

// ComputeBusinessSummary aggregates executions and product sales of the
// period [start, end).
func (f *Finance) ComputeBusinessSummary(businessID uuid.UUID, start, end time.Time) (*BusinessSummary, error) {
	var executions []models.ServiceExecution
	if err := f.db.Where("business_id = ? AND performed_at >= ? AND performed_at < ?", businessID, start, end).
		Find(&executions).Error; err != nil {
		return nil, err
	}

	var productsRevenue int64
	if err := f.db.Model(&models.ProductMovement{}).
		Where("business_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			businessID, models.MovementSale, start, end).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&productsRevenue).Error; err != nil {
		return nil, err
	}

	var professionals []models.Professional
	if err := f.db.Unscoped().Where("business_id = ?", businessID).
		Find(&professionals).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Professional, len(professionals))
	for i := range professionals {
		byID[professionals[i].ID] = &professionals[i]
	}

	executionsByProfessional := make(map[uuid.UUID][]models.ServiceExecution)
	var servicesRevenue int64
	for _, execution := range executions {
		servicesRevenue += execution.ServicePriceCents
		executionsByProfessional[execution.ProfessionalID] = append(
			executionsByProfessional[execution.ProfessionalID], execution)
	}

	summary := &BusinessSummary{
		PeriodStart:          start,
		PeriodEnd:            end,
		ServicesRevenueCents: servicesRevenue,
		ProductsRevenueCents: productsRevenue,
		TotalRevenueCents:    servicesRevenue + productsRevenue,
	}

	for _, professional := range professionals {
		executed := executionsByProfessional[professional.ID]
		if len(executed) == 0 && professional.CompensationType != models.CompensationSalary {
			continue
		}

		var revenue int64
		for _, execution := range executed {
			revenue += execution.ServicePriceCents
		}

		earnings := f.ComputeProfessionalEarnings(&professional, executed)
		summary.Professionals = append(summary.Professionals, ProfessionalLine{
			ProfessionalID:   professional.ID,
			Name:             professional.Name,
			CompensationType: professional.CompensationType,
			ExecutionCount:   len(executed),
			RevenueCents:     revenue,
			EarningsCents:    earnings,
		})

		if professional.CompensationType == models.CompensationPercentage {
			summary.TotalCommissionsCents += earnings
		}
	}

	// Executions referencing a professional we do not know about are a
	// data-integrity problem; report, never silently merge.
	for professionalID := range executionsByProfessional {
		if _, ok := byID[professionalID]; !ok {
			f.log.Warn("execution references unknown professional",
				zap.String("businessId", businessID.String()),
				zap.String("professionalId", professionalID.String()))
		}
	}

	summary.NetCents = summary.TotalRevenueCents - summary.TotalCommissionsCents
	return summary, nil
}

// SetFinanceAccess stores the secondary finance password, bcrypt-hashed.
func (f *Finance) SetFinanceAccess(businessID uuid.UUID, name, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	access := models.FinanceAccess{
		BusinessID:   businessID,
		Name:         name,
		PasswordHash: hash,
	}
	return f.db.Save(&access).Error
}

// VerifyFinanceAccess checks the finance password against the stored hash.
func (f *Finance) VerifyFinanceAccess(businessID uuid.UUID, password string) error {
	var access models.FinanceAccess
	if err := f.db.Where("business_id = ?", businessID).First(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !utils.CheckPasswordHash(password, access.PasswordHash) {
		return ErrUnauthorized
	}
	return nil
}
