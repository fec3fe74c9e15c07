package services

import (
	"errors"
	"fmt"
	"time"

	"agendabiz-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageSender sends one outbound WhatsApp message and returns the
// provider message id. Faked in tests.
type MessageSender interface {
	SendWhatsApp(to, body string) (string, error)
}

// TwilioSender sends via the Twilio WhatsApp API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, whatsAppNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: whatsAppNumber,
	}
}

func (t *TwilioSender) SendWhatsApp(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// Notifier sends booking-confirmation requests over WhatsApp for businesses
// whose no-show policy asks for them, and appends each outbound message to
// the conversation log.
type Notifier struct {
	db     *gorm.DB
	log    *zap.Logger
	sender MessageSender
}

func NewNotifier(db *gorm.DB, log *zap.Logger, sender MessageSender) *Notifier {
	return &Notifier{db: db, log: log, sender: sender}
}

// StartScheduler runs SendDueConfirmations on the given cron spec.
func (n *Notifier) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, n.SendDueConfirmations); err != nil {
		return nil, err
	}
	c.Start()
	n.log.Info("confirmation scheduler started", zap.String("cron", spec))
	return c, nil
}

// SendDueConfirmations walks every business with an active no-show policy
// and messages clients of scheduled appointments entering the reminder
// window. Failures are logged per message, never fatal.
func (n *Notifier) SendDueConfirmations() {
	var policies []models.AntifuroPolicy
	if err := n.db.Where("policy_type <> ? AND reminder_hours IS NOT NULL", models.PolicyNone).
		Find(&policies).Error; err != nil {
		n.log.Error("failed to load no-show policies", zap.Error(err))
		return
	}

	for _, policy := range policies {
		n.processBusiness(policy)
	}
}

func (n *Notifier) processBusiness(policy models.AntifuroPolicy) {
	window := time.Duration(*policy.ReminderHours) * time.Hour
	now := time.Now()

	var due []models.Appointment
	if err := n.db.Where("business_id = ? AND status = ? AND confirmation_sent_at IS NULL", policy.BusinessID, models.StatusScheduled).
		Where("starts_at >= ? AND starts_at <= ?", now, now.Add(window)).
		Find(&due).Error; err != nil {
		n.log.Error("failed to load due appointments",
			zap.String("businessId", policy.BusinessID.String()), zap.Error(err))
		return
	}

	for _, appointment := range due {
		if err := n.sendConfirmation(&appointment); err != nil {
			n.log.Error("confirmation failed",
				zap.String("appointmentId", appointment.ID.String()), zap.Error(err))
		}
	}
}

func (n *Notifier) sendConfirmation(appointment *models.Appointment) error {
	var business models.Business
	if err := n.db.First(&business, "id = ?", appointment.BusinessID).Error; err != nil {
		return err
	}

	var client models.Client
	if err := n.db.Where("business_id = ? AND id = ?", appointment.BusinessID, appointment.ClientID).
		First(&client).Error; err != nil {
		return err
	}
	if client.Phone == "" {
		return fmt.Errorf("client %s has no phone", client.ID)
	}

	var service models.Service
	if err := n.db.Where("business_id = ? AND id = ?", appointment.BusinessID, appointment.ServiceID).
		First(&service).Error; err != nil {
		return err
	}

	body := fmt.Sprintf("Hi %s! Confirming your %s at %s on %s. Reply YES to confirm or NO to cancel.",
		client.Name, service.Name, business.Name,
		appointment.StartsAt.Format("Mon Jan 2 at 15:04"))

	sid, sendErr := n.sender.SendWhatsApp(client.Phone, body)
	status := "sent"
	if sendErr != nil {
		status = "failed"
	}

	conversation, err := n.findOrCreateConversation(appointment.BusinessID, client.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	message := models.Message{
		BusinessID:        appointment.BusinessID,
		ConversationID:    conversation.ID,
		Direction:         models.DirectionOutbound,
		Body:              body,
		ToPhone:           client.Phone,
		ProviderMessageID: sid,
		Status:            status,
	}
	if err := n.db.Create(&message).Error; err != nil {
		return err
	}
	if err := n.db.Model(&models.Conversation{}).Where("id = ?", conversation.ID).
		Update("last_message_at", &now).Error; err != nil {
		return err
	}

	if sendErr != nil {
		return sendErr
	}

	return n.db.Model(&models.Appointment{}).Where("id = ?", appointment.ID).
		Update("confirmation_sent_at", &now).Error
}

func (n *Notifier) findOrCreateConversation(businessID, clientID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := n.db.Where("business_id = ? AND client_id = ?", businessID, clientID).
		First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{
		BusinessID: businessID,
		ClientID:   &clientID,
		Status:     "open",
	}
	return &conversation, n.db.Create(&conversation).Error
}
