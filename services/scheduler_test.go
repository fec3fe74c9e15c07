package services

import (
	"testing"
	"time"

	"agendabiz-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.September, 14, hour, minute, 0, 0, time.UTC)
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha de Ouro")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut + Beard", 60, 10000)

	first, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID:       client.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		StartsAt:       at(9, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, first.Status)
	assert.Equal(t, at(10, 0), first.EndsAt.UTC())

	// 09:30 start overlaps the 09:00-10:00 booking.
	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID:       client.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		StartsAt:       at(9, 30),
	})
	assert.ErrorIs(t, err, ErrConflict)

	// Back-to-back is not an overlap: [9,10) then [10,11).
	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID:       client.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		StartsAt:       at(10, 0),
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentDifferentProfessionalsShareSlot(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Studio Bela")
	professionalA := seedProfessional(t, db, business.ID, "Rafael", 40)
	professionalB := seedProfessional(t, db, business.ID, "Lucas", 40)
	client := seedClient(t, db, business.ID, "Pedro")
	service := seedService(t, db, business.ID, "Cut", 60, 5000)

	_, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professionalA.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professionalB.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Barba Fina")
	professional := seedProfessional(t, db, business.ID, "Thiago", 40)
	client := seedClient(t, db, business.ID, "Bruno")
	service := seedService(t, db, business.ID, "Beard", 30, 3000)

	first, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.Cancel(business.ID, first.ID)
	require.NoError(t, err)

	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	businessA := seedBusiness(t, db, "Business A")
	businessB := seedBusiness(t, db, "Business B")
	professional := seedProfessional(t, db, businessA.ID, "Joao", 40)
	client := seedClient(t, db, businessA.ID, "Carlos")
	service := seedService(t, db, businessA.ID, "Cut", 30, 4000)

	// Business B cannot book against A's professional.
	_, err := scheduler.CreateAppointment(businessB.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAppointmentInactiveProfessional(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Studio")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 30, 4000)

	require.NoError(t, db.Model(professional).Update("active", false).Error)

	_, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdvanceStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	appointment, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	appointment, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appointment.Status)

	appointment, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, appointment.Status)

	// Done is terminal.
	_, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusDone)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceStatusSkipConfirmation(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	appointment, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	// Operator may mark done straight from scheduled.
	_, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusDone)
	assert.NoError(t, err)
}

func TestDoneEmitsExactlyOneExecutionWithFrozenPrice(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	appointment, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusDone)
	require.NoError(t, err)

	var executions []models.ServiceExecution
	require.NoError(t, db.Where("appointment_id = ?", appointment.ID).Find(&executions).Error)
	require.Len(t, executions, 1)
	assert.Equal(t, int64(10000), executions[0].ServicePriceCents)

	// Re-requesting done must fail, not duplicate the execution.
	_, err = scheduler.AdvanceStatus(business.ID, appointment.ID, models.StatusDone)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Later price edits never touch the frozen copy.
	require.NoError(t, db.Model(&models.Service{}).Where("id = ?", service.ID).
		Update("price_cents", 99999).Error)
	var frozen models.ServiceExecution
	require.NoError(t, db.Where("appointment_id = ?", appointment.ID).First(&frozen).Error)
	assert.Equal(t, int64(10000), frozen.ServicePriceCents)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 30, 4000)

	appointment, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.Cancel(business.ID, appointment.ID)
	require.NoError(t, err)

	_, err = scheduler.Cancel(business.ID, appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRescheduleSuccess(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	original, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	replacement, err := scheduler.Reschedule(business.ID, original.ID, at(14, 0))
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, replacement.ID)
	assert.Equal(t, models.StatusScheduled, replacement.Status)
	assert.Equal(t, at(14, 0), replacement.StartsAt.UTC())
	assert.Equal(t, at(15, 0), replacement.EndsAt.UTC())

	var cancelled models.Appointment
	require.NoError(t, db.First(&cancelled, "id = ?", original.ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestRescheduleIntoConflictReportsPartialFailure(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	original, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(14, 0),
	})
	require.NoError(t, err)

	_, err = scheduler.Reschedule(business.ID, original.ID, at(14, 30))
	require.Error(t, err)

	var partial *PartialRescheduleError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, original.ID, partial.CancelledID)
	assert.ErrorIs(t, err, ErrConflict)

	// The original slot is genuinely gone.
	var cancelled models.Appointment
	require.NoError(t, db.First(&cancelled, "id = ?", original.ID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// And no replacement was created.
	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("professional_id = ? AND status <> ?", professional.ID, models.StatusCancelled).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListDay(t *testing.T) {
	db := newTestDB(t)
	scheduler := NewScheduler(db, testLogger())

	business := seedBusiness(t, db, "Navalha")
	professional := seedProfessional(t, db, business.ID, "Joao", 40)
	other := seedProfessional(t, db, business.ID, "Rafael", 40)
	client := seedClient(t, db, business.ID, "Carlos")
	service := seedService(t, db, business.ID, "Cut", 60, 10000)

	late, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(15, 0),
	})
	require.NoError(t, err)
	early, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(9, 0),
	})
	require.NoError(t, err)
	cancelled, err := scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID, StartsAt: at(11, 0),
	})
	require.NoError(t, err)
	_, err = scheduler.Cancel(business.ID, cancelled.ID)
	require.NoError(t, err)

	// Next day, must not appear.
	_, err = scheduler.CreateAppointment(business.ID, CreateAppointmentInput{
		ClientID: client.ID, ProfessionalID: professional.ID, ServiceID: service.ID,
		StartsAt: at(9, 0).AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	day, err := scheduler.ListDay(business.ID, at(0, 0), nil)
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, early.ID, day[0].ID)
	assert.Equal(t, late.ID, day[1].ID)
	assert.Equal(t, "Carlos", day[0].ClientName)
	assert.Equal(t, "Joao", day[0].ProfessionalName)
	assert.Equal(t, "Cut", day[0].ServiceName)

	// Filtering to the other professional yields nothing.
	filtered, err := scheduler.ListDay(business.ID, at(0, 0), []uuid.UUID{other.ID})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
