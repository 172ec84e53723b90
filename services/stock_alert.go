// services/stock_alert.go
package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/anhpham77346/pharma-care/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const expiryWindowDays = 30

// StockAlertService notifies employees about medicines that are running low
// or approaching their expiration date.
type StockAlertService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewStockAlertService(db *gorm.DB) *StockAlertService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	s := &StockAlertService{db: db}
	if accountSid != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}
	return s
}

func (s *StockAlertService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	if _, err := c.AddFunc("0 8 * * *", s.RunDailyChecks); err != nil {
		log.Printf("Failed to schedule stock alerts: %v", err)
		return
	}

	c.Start()
	log.Println("Stock alert scheduler started")
}

func (s *StockAlertService) RunDailyChecks() {
	log.Println("Starting daily stock checks...")

	threshold := 10
	if env := os.Getenv("LOW_STOCK_THRESHOLD"); env != "" {
		if t, err := strconv.Atoi(env); err == nil {
			threshold = t
		}
	}

	var lowStock []models.Medicine
	if err := s.db.Where("quantity < ?", threshold).Find(&lowStock).Error; err != nil {
		log.Printf("Failed to fetch low-stock medicines: %v", err)
		return
	}
	for _, medicine := range lowStock {
		message := fmt.Sprintf("Low stock: %s has %d units left", medicine.Name, medicine.Quantity)
		s.notify(medicine, "low_stock", message)
	}

	cutoff := time.Now().AddDate(0, 0, expiryWindowDays)
	var expiring []models.Medicine
	if err := s.db.
		Where("expiration_date IS NOT NULL AND expiration_date <= ? AND quantity > 0", cutoff).
		Find(&expiring).Error; err != nil {
		log.Printf("Failed to fetch expiring medicines: %v", err)
		return
	}
	for _, medicine := range expiring {
		message := fmt.Sprintf("Expiring soon: %s expires on %s",
			medicine.Name, medicine.ExpirationDate.Format("2006-01-02"))
		s.notify(medicine, "expiring", message)
	}
}

func (s *StockAlertService) notify(medicine models.Medicine, alertType, message string) {
	// One alert per medicine and type per day is enough
	var recent int64
	since := time.Now().Add(-24 * time.Hour)
	s.db.Model(&models.StockAlertLog{}).
		Where("medicine_id = ? AND type = ? AND sent_at > ?", medicine.ID, alertType, since).
		Count(&recent)
	if recent > 0 {
		return
	}

	status := "logged"
	errorMsg := ""

	if s.client != nil {
		var employees []models.Employee
		if err := s.db.Where("phone <> ''").Find(&employees).Error; err != nil {
			log.Printf("Failed to fetch employees for alerts: %v", err)
			return
		}

		for _, employee := range employees {
			params := &twilioApi.CreateMessageParams{}
			params.SetTo(employee.Phone)
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
			params.SetBody(message)

			if _, err := s.client.Api.CreateMessage(params); err != nil {
				log.Printf("Failed to send alert to %s: %v", employee.Phone, err)
				status = "failed"
				errorMsg = err.Error()
			} else {
				status = "sent"
			}
		}
	} else {
		log.Printf("Stock alert: %s", message)
	}

	alertLog := models.StockAlertLog{
		MedicineID:   medicine.ID,
		Type:         alertType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&alertLog).Error; err != nil {
		log.Printf("Failed to log stock alert for medicine %d: %v", medicine.ID, err)
	}
}
