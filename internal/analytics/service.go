package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service recomputes marketplace KPIs on demand from delivery rows.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService builds the aggregation engine on the shared database.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database required")
	}
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Summary computes revenue, order, and rating KPIs, optionally scoped to a
// merchant and a reporting window.
func (s *Service) Summary(ctx context.Context, merchantID *int64, window TimeWindow) (*Summary, error) {
	rows, err := s.loadDeliveries(ctx, merchantID, WindowStart(window, s.now()))
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Window:            window,
		RevenueTotal:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	var ratingSum int64
	for _, row := range rows {
		summary.TotalOrders++
		summary.RevenueTotal = summary.RevenueTotal.Add(row.Amount)
		if row.Status == enums.DeliveryStatusDelivered {
			summary.DeliveredOrders++
		}
		if row.DriverRating != nil {
			summary.RatedOrders++
			ratingSum += int64(*row.DriverRating)
		}
	}

	// empty collections yield zeros, never a division error
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.RevenueTotal.
			Div(decimal.NewFromInt(summary.TotalOrders)).
			Round(2)
		summary.CompletionRate = float64(summary.DeliveredOrders) / float64(summary.TotalOrders) * 100
	}
	if summary.RatedOrders > 0 {
		summary.DriverAverageRating = float64(ratingSum) / float64(summary.RatedOrders)
	}

	return summary, nil
}

// CustomerRollup groups orders per customer. Registered customers are keyed
// by id; anonymous orders fall back to the phone number.
func (s *Service) CustomerRollup(ctx context.Context, merchantID *int64) ([]CustomerStat, error) {
	rows, err := s.loadDeliveries(ctx, merchantID, nil)
	if err != nil {
		return nil, err
	}

	stats := map[string]*CustomerStat{}
	for _, row := range rows {
		key := rollupKey(&row)
		if key == "" {
			continue
		}

		stat, ok := stats[key]
		if !ok {
			stat = &CustomerStat{Key: key, CustomerID: row.CustomerID, TotalSpent: decimal.Zero}
			stats[key] = stat
		}
		stat.TotalOrders++
		stat.TotalSpent = stat.TotalSpent.Add(row.Amount)
		// contact details follow the most recent order
		if !row.CreatedAt.Before(stat.LastOrderDate) {
			stat.LastOrderDate = row.CreatedAt
			stat.Name = row.CustomerName
			stat.Phone = row.CustomerPhone
			stat.Address = row.Address
		}
	}

	result := make([]CustomerStat, 0, len(stats))
	for _, stat := range stats {
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].LastOrderDate.Equal(result[j].LastOrderDate) {
			return result[i].LastOrderDate.After(result[j].LastOrderDate)
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// DriverAverageRating computes the mean rating across a driver's rated
// delivered orders; zero when none have been rated.
func (s *Service) DriverAverageRating(ctx context.Context, driverID int64) (*DriverRating, error) {
	if driverID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "driver id required")
	}

	var rows []models.Delivery
	if err := s.db.WithContext(ctx).
		Where("driver_id = ? AND status = ? AND driver_rating IS NOT NULL", driverID, enums.DeliveryStatusDelivered).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rated deliveries")
	}

	rating := &DriverRating{DriverID: driverID}
	var sum int64
	for _, row := range rows {
		rating.RatedOrders++
		sum += int64(*row.DriverRating)
	}
	if rating.RatedOrders > 0 {
		rating.AverageRating = float64(sum) / float64(rating.RatedOrders)
	}
	return rating, nil
}

func (s *Service) loadDeliveries(ctx context.Context, merchantID *int64, from *time.Time) ([]models.Delivery, error) {
	q := s.db.WithContext(ctx).Model(&models.Delivery{})
	if merchantID != nil {
		q = q.Where("merchant_id = ?", *merchantID)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}

	var rows []models.Delivery
	if err := q.Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deliveries")
	}
	return rows, nil
}

func rollupKey(row *models.Delivery) string {
	if row.CustomerID != nil {
		return fmt.Sprintf("customer:%d", *row.CustomerID)
	}
	if row.CustomerPhone != "" {
		return "phone:" + row.CustomerPhone
	}
	return ""
}
