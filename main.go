package main

import (
	"agendabiz-backend/config"
	"agendabiz-backend/models"
	"agendabiz-backend/routes"
	"agendabiz-backend/services"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	config.InitLogger()
	defer config.Log.Sync()

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Professional{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.ServiceExecution{},
		&models.ProductMovement{},
		&models.AntifuroPolicy{},
		&models.FinanceAccess{},
		&models.Conversation{},
		&models.Message{},
		&models.WhatsAppConnection{},
		&models.Subscription{},
	); err != nil {
		config.Log.Fatal("migration failed", zap.Error(err))
	}

	sender := services.NewTwilioSender(
		config.Cfg.TwilioAccountSID,
		config.Cfg.TwilioAuthToken,
		config.Cfg.TwilioWhatsAppNumber,
	)
	notifier := services.NewNotifier(config.DB, config.Log, sender)
	if _, err := notifier.StartScheduler(config.Cfg.ReminderCron); err != nil {
		config.Log.Fatal("failed to start confirmation scheduler", zap.Error(err))
	}

	r := routes.SetupRouter()
	config.Log.Info("server starting", zap.String("port", config.Cfg.Port))
	if err := r.Run(":" + config.Cfg.Port); err != nil {
		config.Log.Fatal("server exited", zap.Error(err))
	}
}
