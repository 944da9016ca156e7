package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/dateutil"
	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/infra"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxReportRangeDays caps the range report to one quarter.
const maxReportRangeDays = 92

// ReportService aggregates daily and ranged activity. Daily reports are
// cached in Redis; the worker refreshes the cache when a trade invalidates
// a day. All report data is derived — losing the cache only costs a
// recompute.
type ReportService interface {
	Daily(ctx context.Context, date string) (*dto.DailyReportResponse, error)
	Range(ctx context.Context, from, to string) (*dto.RangeReportResponse, error)
	DailyPDF(ctx context.Context, date string) ([]byte, error)

	// RefreshDaily recomputes one day and rewrites its cache entry.
	// Satisfies the worker pool's report handler contract.
	RefreshDaily(ctx context.Context, date string) error
}

type reportService struct {
	sales        repository.SaleRepository
	purchases    repository.PurchaseRepository
	currencies   repository.CurrencyRepository
	transactions repository.TransactionRepository
	rdb          *redis.Client
	cacheTTL     time.Duration
}

func NewReportService(
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	currencies repository.CurrencyRepository,
	transactions repository.TransactionRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) ReportService {
	return &reportService{
		sales:        sales,
		purchases:    purchases,
		currencies:   currencies,
		transactions: transactions,
		rdb:          rdb,
		cacheTTL:     cacheTTL,
	}
}

func dailyCacheKey(date string) string { return "report:daily:" + date }

func (s *reportService) Daily(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	canonical, err := dateutil.Canonical(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dailyCacheKey(canonical)).Bytes(); err == nil {
			var report dto.DailyReportResponse
			if err := json.Unmarshal(cached, &report); err == nil {
				return &report, nil
			}
		}
	}

	report, err := s.compute(ctx, canonical)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, canonical, report)
	return report, nil
}

func (s *reportService) Range(ctx context.Context, from, to string) (*dto.RangeReportResponse, error) {
	canonicalFrom, err := dateutil.Canonical(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	canonicalTo, err := dateutil.Canonical(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	start, _ := time.Parse(dateutil.CanonicalLayout, canonicalFrom)
	end, _ := time.Parse(dateutil.CanonicalLayout, canonicalTo)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end precedes start", ErrValidation)
	}
	if int(end.Sub(start).Hours()/24) > maxReportRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrValidation, maxReportRangeDays)
	}

	resp := &dto.RangeReportResponse{
		From:          canonicalFrom,
		To:            canonicalTo,
		SalesTotal:    decimal.Zero,
		PurchaseTotal: decimal.Zero,
		NetMovement:   decimal.Zero,
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		report, err := s.Daily(ctx, day.Format(dateutil.CanonicalLayout))
		if err != nil {
			return nil, err
		}
		resp.Days = append(resp.Days, *report)
		resp.SalesTotal = resp.SalesTotal.Add(report.SalesTotal)
		resp.PurchaseTotal = resp.PurchaseTotal.Add(report.PurchaseTotal)
		resp.NetMovement = resp.NetMovement.Add(report.NetMovement)
	}
	return resp, nil
}

func (s *reportService) DailyPDF(ctx context.Context, date string) ([]byte, error) {
	report, err := s.Daily(ctx, date)
	if err != nil {
		return nil, err
	}
	return infra.BuildDailyReportPDF(report)
}

func (s *reportService) RefreshDaily(ctx context.Context, date string) error {
	canonical, err := dateutil.Canonical(date)
	if err != nil {
		return err
	}
	report, err := s.compute(ctx, canonical)
	if err != nil {
		return err
	}
	s.cache(ctx, canonical, report)
	return nil
}

func (s *reportService) cache(ctx context.Context, date string, report *dto.DailyReportResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, dailyCacheKey(date), data, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("failed to cache daily report")
	}
}

func (s *reportService) compute(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	report := &dto.DailyReportResponse{
		Date:          date,
		SalesTotal:    decimal.Zero,
		PurchaseTotal: decimal.Zero,
		ExchangeIn:    decimal.Zero,
		ExchangeOut:   decimal.Zero,
		CashIn:        decimal.Zero,
		CashOut:       decimal.Zero,
		NetMovement:   decimal.Zero,
	}
	if display, err := dateutil.DisplayDot(date); err == nil {
		report.DisplayDate = display
	}

	sales, err := s.sales.List(ctx, date, date)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		if sales[i].Status == "voided" {
			continue
		}
		report.SalesCount++
		report.SalesTotal = report.SalesTotal.Add(sales[i].Total)
	}

	purchases, err := s.purchases.List(ctx, date, date)
	if err != nil {
		return nil, err
	}
	for i := range purchases {
		report.PurchaseCount++
		report.PurchaseTotal = report.PurchaseTotal.Add(purchases[i].Total)
	}

	exchanges, err := s.currencies.List(ctx, date, date)
	if err != nil {
		return nil, err
	}
	for i := range exchanges {
		report.ExchangeCount++
		if exchanges[i].Type == "sell" {
			report.ExchangeIn = report.ExchangeIn.Add(exchanges[i].Total)
		} else {
			report.ExchangeOut = report.ExchangeOut.Add(exchanges[i].Total)
		}
	}

	txns, err := s.transactions.List(ctx, repository.TransactionFilter{DateFrom: date, DateTo: date})
	if err != nil {
		return nil, err
	}
	for i := range txns {
		report.TransactionCount++
		switch model.TxSign(txns[i].Type) {
		case 1:
			report.CashIn = report.CashIn.Add(txns[i].Amount)
		case -1:
			report.CashOut = report.CashOut.Add(txns[i].Amount)
		}
	}
	report.NetMovement = report.CashIn.Sub(report.CashOut)
	return report, nil
}
