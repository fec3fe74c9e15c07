package services

import (
	"errors"
	"fmt"
	"time"

	"agendabiz-backend/models"
	"agendabiz-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scheduler owns the appointment lifecycle: creation with the per-professional
// non-overlap check, status transitions, and the cancel-and-rebook reschedule.
type Scheduler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewScheduler(db *gorm.DB, log *zap.Logger) *Scheduler {
	return &Scheduler{db: db, log: log}
}

type CreateAppointmentInput struct {
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartsAt       time.Time
	Notes          string
}

// lockProfessional loads the professional inside the transaction, taking a
// row lock on Postgres so concurrent bookings for the same professional
// serialize around the overlap check.
func lockProfessional(tx *gorm.DB, businessID, professionalID uuid.UUID) (*models.Professional, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var professional models.Professional
	if err := q.Where("business_id = ? AND id = ?", businessID, professionalID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("professional %s: %w", professionalID, ErrNotFound)
		}
		return nil, err
	}
	return &professional, nil
}

// hasOverlap reports whether any non-cancelled appointment of the
// professional intersects [startsAt, endsAt). excludeID skips the
// appointment being rescheduled.
func hasOverlap(tx *gorm.DB, professionalID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Where("professional_id = ? AND status <> ?", professionalID, models.StatusCancelled).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAppointment books a slot for a professional. The overlap check and
// the insert run in one transaction so two concurrent requests for the same
// professional cannot both pass the check.
func (s *Scheduler) CreateAppointment(businessID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	var created *models.Appointment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		professional, err := lockProfessional(tx, businessID, in.ProfessionalID)
		if err != nil {
			return err
		}
		if !professional.Active {
			return fmt.Errorf("%w: professional is inactive", ErrValidation)
		}

		var service models.Service
		if err := tx.Where("business_id = ? AND id = ?", businessID, in.ServiceID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("service %s: %w", in.ServiceID, ErrNotFound)
			}
			return err
		}
		if !service.Active {
			return fmt.Errorf("%w: service is inactive", ErrValidation)
		}

		var client models.Client
		if err := tx.Where("business_id = ? AND id = ?", businessID, in.ClientID).
			First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("client %s: %w", in.ClientID, ErrNotFound)
			}
			return err
		}

		endsAt := in.StartsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

		conflict, err := hasOverlap(tx, in.ProfessionalID, in.StartsAt, endsAt, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrConflict
		}

		appointment := models.Appointment{
			BusinessID:     businessID,
			ClientID:       in.ClientID,
			ProfessionalID: in.ProfessionalID,
			ServiceID:      in.ServiceID,
			StartsAt:       in.StartsAt,
			EndsAt:         endsAt,
			Status:         models.StatusScheduled,
			Notes:          in.Notes,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		created = &appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AdvanceStatus moves an appointment through its lifecycle. Transitioning
// to done writes exactly one ServiceExecution with the service's price
// frozen at this moment; a unique index on the appointment id backstops the
// exactly-once guarantee.
func (s *Scheduler) AdvanceStatus(businessID, appointmentID uuid.UUID, next string) (*models.Appointment, error) {
	var updated *models.Appointment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Where("business_id = ? AND id = ?", businessID, appointmentID).
			First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("appointment %s: %w", appointmentID, ErrNotFound)
			}
			return err
		}

		if !models.CanTransition(appointment.Status, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
		}

		appointment.Status = next
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		if next == models.StatusDone {
			var service models.Service
			if err := tx.Where("business_id = ? AND id = ?", businessID, appointment.ServiceID).
				First(&service).Error; err != nil {
				return err
			}

			execution := models.ServiceExecution{
				BusinessID:        businessID,
				ClientID:          appointment.ClientID,
				ProfessionalID:    appointment.ProfessionalID,
				ServiceID:         appointment.ServiceID,
				AppointmentID:     &appointment.ID,
				ServicePriceCents: service.PriceCents,
				PerformedAt:       time.Now(),
			}
			if err := tx.Create(&execution).Error; err != nil {
				return err
			}
		}

		updated = &appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel is AdvanceStatus to cancelled. Cancelling an already-cancelled
// appointment reports ErrInvalidTransition rather than silently succeeding.
func (s *Scheduler) Cancel(businessID, appointmentID uuid.UUID) (*models.Appointment, error) {
	return s.AdvanceStatus(businessID, appointmentID, models.StatusCancelled)
}

// Reschedule cancels the original booking and re-creates it at the new
// time with the same client, professional and service. Both steps run in
// one transaction holding the professional row lock. If the new slot
// conflicts, the cancellation is still committed and a
// PartialRescheduleError is returned: the user asked to vacate the old
// slot, and hiding that would leave them believing the original booking
// still stands.
func (s *Scheduler) Reschedule(businessID, appointmentID uuid.UUID, newStartsAt time.Time) (*models.Appointment, error) {
	var (
		created *models.Appointment
		partial *PartialRescheduleError
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Where("business_id = ? AND id = ?", businessID, appointmentID).
			First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("appointment %s: %w", appointmentID, ErrNotFound)
			}
			return err
		}

		if _, err := lockProfessional(tx, businessID, appointment.ProfessionalID); err != nil {
			return err
		}

		if !models.CanTransition(appointment.Status, models.StatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, models.StatusCancelled)
		}

		var service models.Service
		if err := tx.Where("business_id = ? AND id = ?", businessID, appointment.ServiceID).
			First(&service).Error; err != nil {
			return err
		}

		appointment.Status = models.StatusCancelled
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		newEndsAt := newStartsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
		conflict, err := hasOverlap(tx, appointment.ProfessionalID, newStartsAt, newEndsAt, &appointment.ID)
		if err != nil {
			return err
		}
		if conflict {
			// Commit the cancellation, surface the partial outcome.
			partial = &PartialRescheduleError{CancelledID: appointment.ID, Err: ErrConflict}
			return nil
		}

		replacement := models.Appointment{
			BusinessID:     businessID,
			ClientID:       appointment.ClientID,
			ProfessionalID: appointment.ProfessionalID,
			ServiceID:      appointment.ServiceID,
			StartsAt:       newStartsAt,
			EndsAt:         newEndsAt,
			Status:         models.StatusScheduled,
			Notes:          appointment.Notes,
		}
		if err := tx.Create(&replacement).Error; err != nil {
			return err
		}

		created = &replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	if partial != nil {
		s.log.Warn("reschedule partially failed",
			zap.String("businessId", businessID.String()),
			zap.String("appointmentId", partial.CancelledID.String()),
		)
		return nil, partial
	}
	return created, nil
}

// DayAppointment is the calendar read model: one row per non-cancelled
// appointment of the day with the display names joined in.
type DayAppointment struct {
	ID               uuid.UUID `json:"id"`
	StartsAt         time.Time `json:"startsAt"`
	EndsAt           time.Time `json:"endsAt"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	ClientID         uuid.UUID `json:"clientId"`
	ClientName       string    `json:"clientName"`
	ProfessionalID   uuid.UUID `json:"professionalId"`
	ProfessionalName string    `json:"professionalName"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
}

// ListDay returns the business's appointments whose start falls on the
// given date, ordered by start time. professionalIDs narrows the calendar
// to a subset of columns; empty means all.
func (s *Scheduler) ListDay(businessID uuid.UUID, date time.Time, professionalIDs []uuid.UUID) ([]DayAppointment, error) {
	dayStart := utils.BeginningOfDay(date)
	dayEnd := utils.EndOfDay(date)

	q := s.db.Table("appointments").
		Select(`appointments.id, appointments.starts_at, appointments.ends_at,
			appointments.status, appointments.notes,
			appointments.client_id, clients.name AS client_name,
			appointments.professional_id, professionals.name AS professional_name,
			appointments.service_id, services.name AS service_name`).
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Joins("JOIN professionals ON professionals.id = appointments.professional_id").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.business_id = ? AND appointments.deleted_at IS NULL", businessID).
		Where("appointments.status <> ?", models.StatusCancelled).
		Where("appointments.starts_at >= ? AND appointments.starts_at < ?", dayStart, dayEnd)

	if len(professionalIDs) > 0 {
		q = q.Where("appointments.professional_id IN ?", professionalIDs)
	}

	var day []DayAppointment
	if err := q.Order("appointments.starts_at").Scan(&day).Error; err != nil {
		return nil, err
	}
	return day, nil
}
