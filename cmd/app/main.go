package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chatorder/cmd"
	"chatorder/internal/adapters/out/directory"
	"chatorder/internal/adapters/out/postgres/catalogrepo"
	"chatorder/internal/adapters/out/postgres/orderrepo"
	"chatorder/internal/adapters/out/rabbitmq"
	"chatorder/internal/adapters/out/whatsapp"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/vendor"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	notifier, err := whatsapp.NewNotifier(whatsapp.Config{
		PhoneNumberID: configs.PhoneNumberID,
		AccessToken:   configs.WhatsAppToken,
		CatalogID:     configs.CatalogID,
	}, logger)
	if err != nil {
		log.Fatalf("Error creating whatsapp notifier: %v", err)
	}

	publisher, err := rabbitmq.NewPublisher(rabbitmq.Config{
		Host:     configs.RabbitHost,
		Port:     configs.RabbitPort,
		User:     configs.RabbitUser,
		Password: configs.RabbitPassword,
	}, logger)
	if err != nil {
		log.Fatalf("Error connecting to rabbitmq: %v", err)
	}
	defer publisher.Close()

	roster := mustBuildDirectory(configs)
	admin := mustAdminPhone(configs)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		notifier,
		publisher,
		roster,
		roster,
		admin,
		logger,
	)

	if err := app.SeedCatalog(context.Background()); err != nil {
		log.Fatalf("Error seeding catalog: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		WhatsAppToken: goDotEnvVariable("WHATSAPP_TOKEN"),
		PhoneNumberID: goDotEnvVariable("PHONE_NUMBER_ID"),
		VerifyToken:   goDotEnvVariable("VERIFY_TOKEN"),
		CatalogID:     goDotEnvVariable("CATALOG_ID"),

		RabbitHost:     goDotEnvVariable("RABBIT_HOST"),
		RabbitPort:     envInt("RABBIT_PORT"),
		RabbitUser:     goDotEnvVariable("RABBIT_USER"),
		RabbitPassword: goDotEnvVariable("RABBIT_PASSWORD"),

		VendorName:  envOrDefault("VENDOR_NAME_1", "Main Vendor"),
		VendorPhone: goDotEnvVariable("VENDOR_PHONE_1"),
		VendorLat:   envFloat("VENDOR_LAT_1"),
		VendorLon:   envFloat("VENDOR_LON_1"),

		DeliveryPartnerName:  envOrDefault("DELIVERY_PARTNER_NAME", "Main Delivery Partner"),
		DeliveryPartnerPhone: goDotEnvVariable("DELIVERY_PARTNER_PHONE"),

		AdminPhone: goDotEnvVariable("ADMIN_PHONE"),

		SessionTTL:        envMinutes("SESSION_TTL_MINUTES", 30),
		ReminderThreshold: envMinutes("PENDING_REMINDER_MINUTES", 5),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envMinutes(key string, fallback int) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return time.Duration(fallback) * time.Minute
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return time.Duration(value) * time.Minute
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &catalogrepo.ProductDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func mustBuildDirectory(configs cmd.Config) *directory.StaticDirectory {
	vendorPhone, err := kernel.NewPhone(configs.VendorPhone)
	if err != nil {
		log.Fatalf("Error parsing VENDOR_PHONE_1: %v", err)
	}
	vendorLocation, err := kernel.NewLocation(configs.VendorLat, configs.VendorLon)
	if err != nil {
		log.Fatalf("Error parsing vendor location: %v", err)
	}
	mainVendor, err := vendor.NewVendor(configs.VendorName, vendorPhone, vendorLocation, true)
	if err != nil {
		log.Fatalf("Error building vendor: %v", err)
	}

	partnerPhone, err := kernel.NewPhone(configs.DeliveryPartnerPhone)
	if err != nil {
		log.Fatalf("Error parsing DELIVERY_PARTNER_PHONE: %v", err)
	}
	mainPartner, err := vendor.NewDeliveryPartner(configs.DeliveryPartnerName, partnerPhone, true)
	if err != nil {
		log.Fatalf("Error building delivery partner: %v", err)
	}

	roster, err := directory.NewStaticDirectory(
		[]*vendor.Vendor{mainVendor},
		[]*vendor.DeliveryPartner{mainPartner},
	)
	if err != nil {
		log.Fatalf("Error building directory: %v", err)
	}
	return roster
}

func mustAdminPhone(configs cmd.Config) kernel.Phone {
	admin, err := kernel.NewPhone(configs.AdminPhone)
	if err != nil {
		log.Fatalf("Error parsing ADMIN_PHONE: %v", err)
	}
	return admin
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
