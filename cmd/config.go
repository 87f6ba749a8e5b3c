package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	WhatsAppToken string
	PhoneNumberID string
	VerifyToken   string
	CatalogID     string

	RabbitHost     string
	RabbitPort     int
	RabbitUser     string
	RabbitPassword string

	VendorName  string
	VendorPhone string
	VendorLat   float64
	VendorLon   float64

	DeliveryPartnerName  string
	DeliveryPartnerPhone string

	AdminPhone string

	SessionTTL        time.Duration
	ReminderThreshold time.Duration
}
