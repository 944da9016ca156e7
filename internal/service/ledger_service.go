package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alperendnc/jewelery-app-sub000/internal/dateutil"
	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"
	"github.com/alperendnc/jewelery-app-sub000/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxConflictRetries bounds the re-runs of a reconciliation that lost an
// optimistic-lock race on the customer document.
const maxConflictRetries = 3

// LedgerService is the reconciliation core: it records a sale or purchase
// together with its stock movement, cash transaction and customer balance
// update as one atomic unit. Either everything lands or nothing does.
type LedgerService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error)
	// VoidSale reverses a completed sale: stock is restored, the customer's
	// debt is rolled back and an inverse cash movement is written. The sale
	// document stays, marked "voided".
	VoidSale(ctx context.Context, saleID primitive.ObjectID) (*dto.SaleResponse, error)

	ListSales(ctx context.Context, filter dto.ListFilter) ([]dto.SaleResponse, error)
	ListPurchases(ctx context.Context, filter dto.ListFilter) ([]dto.PurchaseResponse, error)
	DeleteSale(ctx context.Context, id primitive.ObjectID) error
	DeletePurchase(ctx context.Context, id primitive.ObjectID) error
}

type ledgerService struct {
	products     repository.ProductRepository
	sales        repository.SaleRepository
	purchases    repository.PurchaseRepository
	customers    repository.CustomerRepository
	transactions repository.TransactionRepository
	tx           repository.TxRunner
	dispatcher   *worker.Dispatcher
	retry        RetryPolicy
}

func NewLedgerService(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	customers repository.CustomerRepository,
	transactions repository.TransactionRepository,
	tx repository.TxRunner,
	dispatcher *worker.Dispatcher,
	retry RetryPolicy,
) LedgerService {
	return &ledgerService{
		products:     products,
		sales:        sales,
		purchases:    purchases,
		customers:    customers,
		transactions: transactions,
		tx:           tx,
		dispatcher:   dispatcher,
		retry:        retry,
	}
}

// ─── Sale ────────────────────────────────────────────────────────────────────

func (s *ledgerService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	var resp *dto.SaleResponse
	err = s.runReconciliation(ctx, func(txCtx context.Context) error {
		product, err := s.products.FindByNameGram(txCtx, req.ProductName, req.Gram)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		// Conditional decrement first: a failed guard aborts the whole
		// transaction before any record is written.
		if err := s.products.AdjustStock(txCtx, product.ID, -req.Quantity); err != nil {
			if errors.Is(err, repository.ErrNoMatch) {
				return ErrInsufficientStock
			}
			return err
		}

		customer, err := s.resolveCustomer(txCtx, req.CustomerID, req.Customer, date)
		if err != nil {
			return err
		}

		sale := &model.Sale{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Gram:          product.Gram,
			Quantity:      req.Quantity,
			Total:         req.Total,
			Paid:          req.Paid,
			Date:          date,
			PaymentMethod: method,
			Status:        "completed",
		}
		if customer != nil {
			sale.CustomerID = &customer.ID
			sale.CustomerName = customer.Name
			sale.CustomerTC = customer.TC
		}
		if err := s.sales.Create(txCtx, sale); err != nil {
			return err
		}

		txn := &model.Transaction{
			Type:        model.TxTypeSale,
			Description: saleDescription(sale),
			Amount:      req.Total,
			Date:        date,
			Method:      method,
			ReferenceID: &sale.ID,
		}
		if err := s.transactions.Create(txCtx, txn); err != nil {
			return err
		}

		debt := decimal.Zero
		if customer != nil {
			debt = customer.Debt.Add(req.Total).Sub(req.Paid)
			fields := bson.M{
				"soldItem": sale.ProductName,
				"total":    req.Total,
				"paid":     req.Paid,
				"debt":     debt,
				"date":     date,
			}
			if err := s.customers.UpdateBalance(txCtx, customer.ID, customer.Version, fields); err != nil {
				if errors.Is(err, repository.ErrNoMatch) {
					return ErrConcurrentModification
				}
				return err
			}
		}

		resp = saleResponse(sale, debt, product.Stock-req.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReport(ctx, date)
	return resp, nil
}

// ─── Purchase ────────────────────────────────────────────────────────────────

func (s *ledgerService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	var resp *dto.PurchaseResponse
	err = s.runReconciliation(ctx, func(txCtx context.Context) error {
		product, err := s.resolveProduct(txCtx, req.ProductID, req.ProductName, req.Gram)
		if err != nil {
			return err
		}

		// Buying back always succeeds stock-wise; the increment has no guard.
		if err := s.products.AdjustStock(txCtx, product.ID, req.Quantity); err != nil {
			return err
		}

		customer, err := s.resolveCustomer(txCtx, req.CustomerID, req.Customer, date)
		if err != nil {
			return err
		}

		purchase := &model.Purchase{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Gram:          product.Gram,
			Quantity:      req.Quantity,
			Total:         req.Total,
			Paid:          req.Paid,
			Date:          date,
			PaymentMethod: method,
		}
		if customer != nil {
			purchase.CustomerID = &customer.ID
			purchase.CustomerName = customer.Name
			purchase.CustomerTC = customer.TC
		}
		if err := s.purchases.Create(txCtx, purchase); err != nil {
			return err
		}

		// Cash leaves the till for what was actually handed over.
		txn := &model.Transaction{
			Type:        model.TxTypePurchase,
			Description: purchaseDescription(purchase),
			Amount:      req.Paid,
			Date:        date,
			Method:      method,
			ReferenceID: &purchase.ID,
		}
		if err := s.transactions.Create(txCtx, txn); err != nil {
			return err
		}

		// The unpaid remainder is what the shop still owes, so the
		// customer's debt position decreases by it.
		debt := decimal.Zero
		if customer != nil {
			debt = customer.Debt.Sub(req.Total.Sub(req.Paid))
			fields := bson.M{
				"boughtItem": purchase.ProductName,
				"total":      req.Total,
				"paid":       req.Paid,
				"debt":       debt,
				"date":       date,
			}
			if err := s.customers.UpdateBalance(txCtx, customer.ID, customer.Version, fields); err != nil {
				if errors.Is(err, repository.ErrNoMatch) {
					return ErrConcurrentModification
				}
				return err
			}
		}

		resp = purchaseResponse(purchase, debt, product.Stock+req.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReport(ctx, date)
	return resp, nil
}

// ─── Void ────────────────────────────────────────────────────────────────────

func (s *ledgerService) VoidSale(ctx context.Context, saleID primitive.ObjectID) (*dto.SaleResponse, error) {
	var resp *dto.SaleResponse
	var date string
	err := s.runReconciliation(ctx, func(txCtx context.Context) error {
		sale, err := s.sales.FindByID(txCtx, saleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: sale %s", ErrValidation, saleID.Hex())
			}
			return err
		}
		if sale.Status == "voided" {
			return fmt.Errorf("%w: sale already voided", ErrValidation)
		}
		date = sale.Date

		if err := s.products.AdjustStock(txCtx, sale.ProductID, sale.Quantity); err != nil {
			// Product may have been deleted since; the void still proceeds.
			if !errors.Is(err, repository.ErrNoMatch) {
				return err
			}
		}

		if err := s.sales.UpdateStatus(txCtx, sale.ID, "voided"); err != nil {
			return err
		}

		txn := &model.Transaction{
			Type:        model.TxTypeVoid,
			Description: "void: " + saleDescription(sale),
			Amount:      sale.Total,
			Date:        sale.Date,
			Method:      sale.PaymentMethod,
			ReferenceID: &sale.ID,
		}
		if err := s.transactions.Create(txCtx, txn); err != nil {
			return err
		}

		debt := decimal.Zero
		if sale.CustomerID != nil {
			customer, err := s.customers.FindByID(txCtx, *sale.CustomerID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				// Customer deleted since the sale; nothing to roll back.
			case err != nil:
				return err
			default:
				debt = customer.Debt.Sub(sale.Total).Add(sale.Paid)
				fields := bson.M{"debt": debt, "date": sale.Date}
				if err := s.customers.UpdateBalance(txCtx, customer.ID, customer.Version, fields); err != nil {
					if errors.Is(err, repository.ErrNoMatch) {
						return ErrConcurrentModification
					}
					return err
				}
			}
		}

		sale.Status = "voided"
		resp = saleResponse(sale, debt, -1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReport(ctx, date)
	return resp, nil
}

// ─── Listing / deletion ──────────────────────────────────────────────────────

func (s *ledgerService) ListSales(ctx context.Context, filter dto.ListFilter) ([]dto.SaleResponse, error) {
	from, to, err := normalizeRange(filter)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleResponse(&sales[i], decimal.Zero, -1))
	}
	return out, nil
}

func (s *ledgerService) ListPurchases(ctx context.Context, filter dto.ListFilter) ([]dto.PurchaseResponse, error) {
	from, to, err := normalizeRange(filter)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, *purchaseResponse(&purchases[i], decimal.Zero, -1))
	}
	return out, nil
}

// DeleteSale removes the record only. Stock and balances are untouched;
// reversal with compensation goes through VoidSale.
func (s *ledgerService) DeleteSale(ctx context.Context, id primitive.ObjectID) error {
	err := s.sales.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: sale %s", ErrValidation, id.Hex())
	}
	return err
}

func (s *ledgerService) DeletePurchase(ctx context.Context, id primitive.ObjectID) error {
	err := s.purchases.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: purchase %s", ErrValidation, id.Hex())
	}
	return err
}

// ─── Internals ───────────────────────────────────────────────────────────────

// runReconciliation runs op inside a store transaction, re-running the whole
// transaction when an optimistic-lock race is detected and retrying with
// backoff on transient store failures. op must be safe to re-run from
// scratch: every re-run re-reads its inputs.
func (s *ledgerService) runReconciliation(ctx context.Context, op func(txCtx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = withRetry(ctx, s.retry, func() error {
			return s.tx.WithTransaction(ctx, op)
		})
		if !errors.Is(err, ErrConcurrentModification) {
			return err
		}
		log.Warn().Int("attempt", attempt+1).Msg("reconciliation lost a version race, re-running")
	}
	return err
}

// resolveCustomer finds the counterparty of a sale/purchase: by id when
// given, else by tc (dedup), else by creating a fresh document. Returns
// (nil, nil) for anonymous trades.
func (s *ledgerService) resolveCustomer(ctx context.Context, customerID string, ref *dto.CustomerRef, date string) (*model.Customer, error) {
	if customerID != "" {
		oid, err := primitive.ObjectIDFromHex(customerID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed customer id", ErrValidation)
		}
		customer, err := s.customers.FindByID(ctx, oid)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return customer, err
	}

	if ref == nil || (ref.Name == "" && ref.TC == "") {
		return nil, nil
	}

	if ref.TC != "" {
		customer, err := s.customers.FindByTC(ctx, ref.TC)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	customer := &model.Customer{
		Name:  ref.Name,
		TC:    ref.TC,
		Phone: ref.Phone,
		Date:  date,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		// A concurrent reconciliation inserted the same tc between our
		// lookup and insert; re-run picks up the winner.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConcurrentModification
		}
		return nil, err
	}
	return customer, nil
}

func (s *ledgerService) resolveProduct(ctx context.Context, productID, name, gram string) (*model.Product, error) {
	if productID != "" {
		oid, err := primitive.ObjectIDFromHex(productID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed product id", ErrValidation)
		}
		product, err := s.products.FindByID(ctx, oid)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return product, err
	}
	product, err := s.products.FindByNameGram(ctx, name, gram)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// invalidateReport enqueues a report recompute for the affected day.
// Best effort: a full queue or a down broker never fails the trade.
func (s *ledgerService) invalidateReport(ctx context.Context, date string) {
	if s.dispatcher == nil || date == "" {
		return
	}
	if err := s.dispatcher.EnqueueReportInvalidate(ctx, date); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("failed to enqueue report invalidation")
	}
}

func saleDescription(s *model.Sale) string {
	desc := fmt.Sprintf("sale: %dx %s", s.Quantity, s.ProductName)
	if s.Gram != "" {
		desc += " " + s.Gram
	}
	if s.CustomerName != "" {
		desc += " to " + s.CustomerName
	}
	return desc
}

func purchaseDescription(p *model.Purchase) string {
	desc := fmt.Sprintf("purchase: %dx %s", p.Quantity, p.ProductName)
	if p.Gram != "" {
		desc += " " + p.Gram
	}
	if p.CustomerName != "" {
		desc += " from " + p.CustomerName
	}
	return desc
}

func saleResponse(s *model.Sale, debt decimal.Decimal, stockAfter int) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID.Hex(),
		ProductID:     s.ProductID.Hex(),
		ProductName:   s.ProductName,
		Gram:          s.Gram,
		CustomerName:  s.CustomerName,
		CustomerDebt:  debt,
		Quantity:      s.Quantity,
		Total:         s.Total,
		Paid:          s.Paid,
		Date:          s.Date,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		StockAfter:    stockAfter,
	}
	if s.CustomerID != nil {
		resp.CustomerID = s.CustomerID.Hex()
	}
	if display, err := dateutil.DisplayDot(s.Date); err == nil {
		resp.DisplayDate = display
	}
	return resp
}

func purchaseResponse(p *model.Purchase, debt decimal.Decimal, stockAfter int) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID.Hex(),
		ProductID:     p.ProductID.Hex(),
		ProductName:   p.ProductName,
		Gram:          p.Gram,
		CustomerName:  p.CustomerName,
		CustomerDebt:  debt,
		Quantity:      p.Quantity,
		Total:         p.Total,
		Paid:          p.Paid,
		Date:          p.Date,
		PaymentMethod: p.PaymentMethod,
		StockAfter:    stockAfter,
	}
	if p.CustomerID != nil {
		resp.CustomerID = p.CustomerID.Hex()
	}
	if display, err := dateutil.DisplayDot(p.Date); err == nil {
		resp.DisplayDate = display
	}
	return resp
}

// normalizeRange canonicalizes the optional from/to filter dates.
func normalizeRange(filter dto.ListFilter) (string, string, error) {
	var from, to string
	var err error
	if filter.DateFrom != "" {
		if from, err = dateutil.Canonical(filter.DateFrom); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if filter.DateTo != "" {
		if to, err = dateutil.Canonical(filter.DateTo); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	return from, to, nil
}
