package main

import (
	"context"
	"log"
	"time"

	"shop-assistant-be/internal/config"
	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/pkg/database"
	"shop-assistant-be/pkg/embedding"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	if err != nil {
		log.Fatalf("Error: Failed to initialize embedding provider: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)

	log.Println("Seeding demo users...")
	customerID := seedUsers(db)

	log.Println("Seeding product catalog...")
	SeedCatalog(context.Background(), uowFactory, embeddingProvider)

	log.Println("Seeding demo orders...")
	seedOrders(db, customerID)

	log.Println("✅ Seeding completed!")
}

func seedUsers(db *gorm.DB) uuid.UUID {
	users := []struct {
		Username  string
		Email     string
		Password  string
		FirstName string
		Role      string
	}{
		{"yuki", "yuki@example.com", "password123", "Yuki", "customer"},
		{"agent_mei", "mei@shopez.example", "password123", "Mei", "agent"},
	}

	var customerID uuid.UUID
	for _, u := range users {
		var existing model.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			log.Printf("User '%s' already exists, skipping...", u.Username)
			if u.Role == "customer" {
				customerID = existing.Id
			}
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error hashing password: %v", err)
		}

		user := model.User{
			Id:           uuid.New(),
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: string(hash),
			FirstName:    u.FirstName,
			Role:         u.Role,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating user '%s': %v", u.Username, err)
			continue
		}
		log.Printf("Created user: %s (%s)", u.Username, u.Role)
		if u.Role == "customer" {
			customerID = user.Id
		}
	}
	return customerID
}

func seedOrders(db *gorm.DB, customerID uuid.UUID) {
	if customerID == uuid.Nil {
		log.Println("No customer user to attach orders to, skipping orders")
		return
	}

	now := time.Now()
	delivered := now.AddDate(0, 0, -10)
	returnBy := now.AddDate(0, 0, 20)

	orders := []model.Order{
		{
			Id: uuid.New(), OrderID: "ORD-1001", UserId: customerID,
			SKU: "HP-PAV-15", ProductName: "HP Pavilion 15", PriceYen: 149833,
			Status: "delivered", OrderDate: now.AddDate(0, 0, -14),
			DeliveryDate: &delivered, ReturnDeadline: &returnBy,
			Carrier: "Yamato", TrackingNumber: "YT4420187766",
			CreatedAt: now,
		},
		{
			Id: uuid.New(), OrderID: "ORD-1005", UserId: customerID,
			SKU: "APL-MBA-M2", ProductName: "Apple MacBook Air M2", PriceYen: 241638,
			Status: "shipped", OrderDate: now.AddDate(0, 0, -3),
			Carrier: "Sagawa", TrackingNumber: "SG9911203344",
			CreatedAt: now,
		},
		{
			Id: uuid.New(), OrderID: "ORD-1009", UserId: customerID,
			SKU: "LEN-IDEA-3", ProductName: "Lenovo IdeaPad Slim 3", PriceYen: 82500,
			Status: "processing", OrderDate: now.AddDate(0, 0, -1),
			CreatedAt: now,
		},
	}

	for _, o := range orders {
		var existing model.Order
		if err := db.Where("order_id = ?", o.OrderID).First(&existing).Error; err == nil {
			log.Printf("Order '%s' already exists, skipping...", o.OrderID)
			continue
		}
		if err := db.Create(&o).Error; err != nil {
			log.Printf("Error creating order '%s': %v", o.OrderID, err)
		} else {
			log.Printf("Created order: %s (%s)", o.OrderID, o.Status)
		}
	}
}
