package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Delivery{}, &models.DeliveryItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(conn)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func seedDelivery(t *testing.T, conn *gorm.DB, d models.Delivery) {
	t.Helper()
	if d.Status == "" {
		d.Status = enums.DeliveryStatusPending
	}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("seed delivery: %v", err)
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestSummaryEmptyCollectionYieldsZeros(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.Summary(context.Background(), nil, WindowAll)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOrders != 0 {
		t.Fatalf("expected 0 orders, got %d", summary.TotalOrders)
	}
	if !summary.AverageOrderValue.IsZero() {
		t.Fatalf("average of nothing must be zero, got %s", summary.AverageOrderValue)
	}
	if summary.CompletionRate != 0 {
		t.Fatalf("completion of nothing must be zero, got %f", summary.CompletionRate)
	}
	if summary.DriverAverageRating != 0 {
		t.Fatalf("rating of nothing must be zero, got %f", summary.DriverAverageRating)
	}
}

func TestSummaryComputesKPIs(t *testing.T) {
	svc, conn := newTestService(t)
	now := time.Now().UTC()

	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "A", Address: "x",
		Amount: decimal.NewFromFloat(10), Status: enums.DeliveryStatusDelivered,
		DriverRating: intPtr(5), CreatedAt: now,
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "B", Address: "y",
		Amount: decimal.NewFromFloat(20), Status: enums.DeliveryStatusDelivered,
		DriverRating: intPtr(4), CreatedAt: now,
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "C", Address: "z",
		Amount: decimal.NewFromFloat(30), Status: enums.DeliveryStatusPending, CreatedAt: now,
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 2, CustomerName: "D", Address: "w",
		Amount: decimal.NewFromFloat(100), Status: enums.DeliveryStatusDelivered, CreatedAt: now,
	})

	summary, err := svc.Summary(context.Background(), int64Ptr(1), WindowAll)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOrders != 3 {
		t.Fatalf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if !summary.RevenueTotal.Equal(decimal.NewFromFloat(60)) {
		t.Fatalf("expected revenue 60, got %s", summary.RevenueTotal)
	}
	if !summary.AverageOrderValue.Equal(decimal.NewFromFloat(20)) {
		t.Fatalf("expected AOV 20, got %s", summary.AverageOrderValue)
	}
	if want := float64(2) / 3 * 100; summary.CompletionRate != want {
		t.Fatalf("expected completion %f, got %f", want, summary.CompletionRate)
	}
	if summary.DriverAverageRating != 4.5 {
		t.Fatalf("expected rating 4.5, got %f", summary.DriverAverageRating)
	}
}

func TestSummaryWindowFiltersOldOrders(t *testing.T) {
	svc, conn := newTestService(t)
	svc.now = func() time.Time {
		// Wednesday 2026-03-18; week started Sunday 2026-03-15
		return time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
	}

	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "Old", Address: "x",
		Amount: decimal.NewFromFloat(50), Status: enums.DeliveryStatusDelivered,
		CreatedAt: time.Date(2026, time.March, 14, 23, 0, 0, 0, time.UTC),
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "Fresh", Address: "y",
		Amount: decimal.NewFromFloat(15), Status: enums.DeliveryStatusDelivered,
		CreatedAt: time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC),
	})

	summary, err := svc.Summary(context.Background(), int64Ptr(1), WindowThisWeek)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalOrders != 1 {
		t.Fatalf("expected 1 order in window, got %d", summary.TotalOrders)
	}
	if !summary.RevenueTotal.Equal(decimal.NewFromFloat(15)) {
		t.Fatalf("expected revenue 15, got %s", summary.RevenueTotal)
	}
}

func TestCustomerRollupKeysByIDThenPhone(t *testing.T) {
	svc, conn := newTestService(t)
	base := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	// registered customer: two orders under the same id, phone changed between them
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerID: int64Ptr(42), CustomerName: "Lea", CustomerPhone: "0600000001",
		Address: "old address", Amount: decimal.NewFromFloat(10), CreatedAt: base,
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerID: int64Ptr(42), CustomerName: "Lea", CustomerPhone: "0600000002",
		Address: "new address", Amount: decimal.NewFromFloat(20), CreatedAt: base.Add(48 * time.Hour),
	})
	// anonymous orders: grouped by phone
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "Walk-in", CustomerPhone: "0611111111",
		Address: "z", Amount: decimal.NewFromFloat(5), CreatedAt: base.Add(time.Hour),
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, CustomerName: "Walk-in", CustomerPhone: "0611111111",
		Address: "z", Amount: decimal.NewFromFloat(7), CreatedAt: base.Add(2 * time.Hour),
	})

	stats, err := svc.CustomerRollup(context.Background(), int64Ptr(1))
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(stats))
	}

	// sorted by most recent order first
	lea := stats[0]
	if lea.CustomerID == nil || *lea.CustomerID != 42 {
		t.Fatalf("expected registered customer first, got %+v", lea)
	}
	if lea.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", lea.TotalOrders)
	}
	if !lea.TotalSpent.Equal(decimal.NewFromFloat(30)) {
		t.Fatalf("expected spent 30, got %s", lea.TotalSpent)
	}
	if lea.Phone != "0600000002" || lea.Address != "new address" {
		t.Fatalf("contact details must follow the most recent order, got %+v", lea)
	}

	walkIn := stats[1]
	if walkIn.CustomerID != nil {
		t.Fatal("anonymous rollup should not carry a customer id")
	}
	if walkIn.TotalOrders != 2 || !walkIn.TotalSpent.Equal(decimal.NewFromFloat(12)) {
		t.Fatalf("unexpected walk-in stats %+v", walkIn)
	}
}

func TestDriverAverageRating(t *testing.T) {
	svc, conn := newTestService(t)
	now := time.Now().UTC()

	rating, err := svc.DriverAverageRating(context.Background(), 7)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating.AverageRating != 0 || rating.RatedOrders != 0 {
		t.Fatalf("expected zero-value rating, got %+v", rating)
	}

	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, DriverID: int64Ptr(7), CustomerName: "A", Address: "x",
		Amount: decimal.NewFromFloat(10), Status: enums.DeliveryStatusDelivered,
		DriverRating: intPtr(5), CreatedAt: now,
	})
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, DriverID: int64Ptr(7), CustomerName: "B", Address: "y",
		Amount: decimal.NewFromFloat(10), Status: enums.DeliveryStatusDelivered,
		DriverRating: intPtr(2), CreatedAt: now,
	})
	// unrated delivery must not count
	seedDelivery(t, conn, models.Delivery{
		MerchantID: 1, DriverID: int64Ptr(7), CustomerName: "C", Address: "z",
		Amount: decimal.NewFromFloat(10), Status: enums.DeliveryStatusDelivered, CreatedAt: now,
	})

	rating, err = svc.DriverAverageRating(context.Background(), 7)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating.RatedOrders != 2 {
		t.Fatalf("expected 2 rated orders, got %d", rating.RatedOrders)
	}
	if rating.AverageRating != 3.5 {
		t.Fatalf("expected average 3.5, got %f", rating.AverageRating)
	}
}
