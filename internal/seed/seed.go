package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/config"
	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/avelara/dispatchly-backend/pkg/security"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DemoPassword is shared by every fixture account.
const DemoPassword = "demo-pass-123"

// Run loads the demo fixtures: three accounts, a product catalogue, a few
// deliveries across statuses, and a sample event calendar. It is idempotent:
// a database that already has users is left untouched.
func Run(ctx context.Context, conn *gorm.DB, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	var existing int64
	if err := conn.WithContext(ctx).Model(&models.User{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		logg.Info(ctx, "demo data already present; skipping seed")
		return nil
	}

	hash, err := security.HashPassword(DemoPassword, passwordCfg)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(tx, hash)
		if err != nil {
			return err
		}
		if err := seedProducts(tx, users.merchant.ID); err != nil {
			return err
		}
		if err := seedDeliveries(tx, users); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedEvents(tx); err != nil {
			return err
		}
		logg.Info(ctx, "demo data loaded")
		return nil
	})
}

type fixtureUsers struct {
	driver   *models.User
	merchant *models.User
	client   *models.User
}

func seedUsers(tx *gorm.DB, passwordHash string) (*fixtureUsers, error) {
	business := "Chez Marie"
	address := "12 rue des Lilas, Paris"

	users := &fixtureUsers{
		driver: &models.User{
			Name: "Karim Benali", Email: "driver@dispatchly.dev", PasswordHash: passwordHash,
			Role: enums.RoleDriver, Phone: "0612345678", Earnings: decimal.Zero,
		},
		merchant: &models.User{
			Name: "Marie Lefevre", Email: "merchant@dispatchly.dev", PasswordHash: passwordHash,
			Role: enums.RoleMerchant, Phone: "0123456789",
			Earnings: decimal.Zero, BusinessName: &business, Address: &address,
		},
		client: &models.User{
			Name: "Lea Dubois", Email: "client@dispatchly.dev", PasswordHash: passwordHash,
			Role: enums.RoleClient, Phone: "0698765432", Earnings: decimal.Zero,
		},
	}
	for _, user := range []*models.User{users.driver, users.merchant, users.client} {
		if err := tx.Create(user).Error; err != nil {
			return nil, fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}
	return users, nil
}

func seedProducts(tx *gorm.DB, merchantID int64) error {
	products := []models.Product{
		{
			MerchantID: merchantID, Name: "Sandwich jambon-beurre", Category: "sandwichs",
			Price: decimal.NewFromFloat(5.50), Description: "Baguette, jambon de Paris, beurre doux", Available: true,
		},
		// only the jambon-beurre entry may mention jambon; catalogue search
		// for it must hit a single row
		{
			MerchantID: merchantID, Name: "Croque-monsieur", Category: "sandwichs",
			Price: decimal.NewFromFloat(7.00), Description: "Pain de mie, emmental, bechamel", Available: true,
		},
		{
			MerchantID: merchantID, Name: "Salade nicoise", Category: "salades",
			Price: decimal.NewFromFloat(9.50), Description: "Thon, olives, oeuf, haricots verts", Available: true,
		},
		{
			MerchantID: merchantID, Name: "Tarte au citron", Category: "desserts",
			Price: decimal.NewFromFloat(4.50), Description: "Pate sablee, creme citron", Available: false,
		},
	}
	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Name, err)
		}
	}
	return nil
}

func seedDeliveries(tx *gorm.DB, users *fixtureUsers) error {
	now := time.Now().UTC()
	deliveredAt := now.Add(-20 * time.Hour)
	rating := 5

	deliveries := []models.Delivery{
		{
			MerchantID: users.merchant.ID, CustomerName: "Paul Martin", CustomerPhone: "0611111111",
			Address: "3 avenue de la Gare, Paris", Amount: decimal.NewFromFloat(12.50),
			Status: enums.DeliveryStatusPending,
			Items: []models.DeliveryItem{
				{Name: "Sandwich jambon-beurre", Quantity: 1, Price: decimal.NewFromFloat(5.50)},
				{Name: "Croque-monsieur", Quantity: 1, Price: decimal.NewFromFloat(7.00)},
			},
		},
		{
			MerchantID: users.merchant.ID, DriverID: &users.driver.ID, CustomerID: &users.client.ID,
			CustomerName: users.client.Name, CustomerPhone: users.client.Phone,
			Address: "8 rue Oberkampf, Paris", Amount: decimal.NewFromFloat(9.50),
			Status: enums.DeliveryStatusInProgress, Version: 2,
			Items: []models.DeliveryItem{
				{Name: "Salade nicoise", Quantity: 1, Price: decimal.NewFromFloat(9.50)},
			},
		},
		{
			MerchantID: users.merchant.ID, DriverID: &users.driver.ID, CustomerID: &users.client.ID,
			CustomerName: users.client.Name, CustomerPhone: users.client.Phone,
			Address: "8 rue Oberkampf, Paris", Amount: decimal.NewFromFloat(17.00),
			Status: enums.DeliveryStatusDelivered, Version: 3,
			DeliveredAt: &deliveredAt, DriverRating: &rating,
			Items: []models.DeliveryItem{
				{Name: "Croque-monsieur", Quantity: 2, Price: decimal.NewFromFloat(7.00)},
			},
		},
	}
	for i := range deliveries {
		if err := tx.Create(&deliveries[i]).Error; err != nil {
			return fmt.Errorf("seed delivery for %s: %w", deliveries[i].CustomerName, err)
		}
	}

	// delivered order already paid out
	return tx.Model(&models.User{}).
		Where("id = ?", users.driver.ID).
		UpdateColumn("earnings", decimal.NewFromFloat(17.00)).Error
}

// seedCategories covers every category the event fixtures reference, plus
// the default offered when scheduling a new event.
func seedCategories(tx *gorm.DB) error {
	for _, name := range []string{"food", "team", "party"} {
		if err := tx.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
	}
	return nil
}

func seedEvents(tx *gorm.DB) error {
	now := time.Now().UTC()
	events := []struct {
		event  models.Event
		guests []models.Guest
	}{
		{
			event: models.Event{
				Title: "Degustation d'automne", Description: "Nouvelle carte en avant-premiere",
				Date: now.AddDate(0, 0, 14), Location: "Chez Marie", Category: "food",
			},
			guests: []models.Guest{
				{Name: "Nina Rossi", Email: "nina@example.com", RSVPStatus: enums.RSVPStatusAccepted},
				{Name: "Marc Petit", Phone: "0622222222", RSVPStatus: enums.RSVPStatusPending},
			},
		},
		{
			event: models.Event{
				Title: "Soiree des livreurs", Description: "Remise des trophees",
				Date: now.AddDate(0, -1, 0), Location: "Le Hangar", Category: "team",
			},
			guests: []models.Guest{
				{Name: "Karim Benali", RSVPStatus: enums.RSVPStatusAccepted},
			},
		},
	}

	for i := range events {
		entry := &events[i]
		entry.event.GuestCount = len(entry.guests)
		if err := tx.Create(&entry.event).Error; err != nil {
			return fmt.Errorf("seed event %s: %w", entry.event.Title, err)
		}
		for j := range entry.guests {
			entry.guests[j].EventID = entry.event.ID
			if err := tx.Create(&entry.guests[j]).Error; err != nil {
				return fmt.Errorf("seed guest %s: %w", entry.guests[j].Name, err)
			}
		}
	}
	return nil
}
