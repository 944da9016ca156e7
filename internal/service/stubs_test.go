package service_test

import (
	"context"
	"testing"

	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"

	"github.com/shopspring/decimal"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// txStore is a stub repo that can snapshot its state and hand back a
// restore closure, so stubTxRunner can undo a failed unit.
type txStore interface {
	snapshot() func()
}

// stubTxRunner runs the closure against its stores, restoring every store's
// snapshot when the closure fails. Writes made outside the runner (a
// "concurrently committed" writer in a test) are not protected and survive
// the restore only if they happen after it.
type stubTxRunner struct {
	stores []txStore
}

func (r stubTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), 0, len(r.stores))
	for _, s := range r.stores {
		restores = append(restores, s.snapshot())
	}
	err := fn(ctx)
	if err != nil {
		for _, restore := range restores {
			restore()
		}
	}
	return err
}

var _ repository.TxRunner = stubTxRunner{}

func snapshotMap[V any](m map[primitive.ObjectID]*V) map[primitive.ObjectID]*V {
	saved := make(map[primitive.ObjectID]*V, len(m))
	for id, v := range m {
		cp := *v
		saved[id] = &cp
	}
	return saved
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[primitive.ObjectID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[primitive.ObjectID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.Name == p.Name && existing.Gram == p.Gram {
			return duplicateKeyError()
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByNameGram(_ context.Context, name, gram string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name && (gram == "" || p.Gram == gram) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["gram"]; ok {
		p.Gram = v.(string)
	}
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNoMatch
	}
	if p.Stock+delta < 0 {
		return repository.ErrNoMatch
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) snapshot() func() {
	saved := snapshotMap(r.products)
	return func() { r.products = saved }
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubCustomerRepo is an in-memory CustomerRepository enforcing the unique
// tc index and version-guarded balance updates. afterFindByTC, when set,
// runs after every tc lookup and stands in for a writer that commits
// between the read and the guarded update.
type stubCustomerRepo struct {
	customers     map[primitive.ObjectID]*model.Customer
	afterFindByTC func()
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[primitive.ObjectID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.TC != "" {
		for _, existing := range r.customers {
			if existing.TC == c.TC {
				return duplicateKeyError()
			}
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) FindByTC(_ context.Context, tc string) (*model.Customer, error) {
	defer func() {
		if r.afterFindByTC != nil {
			r.afterFindByTC()
		}
	}()
	for _, c := range r.customers {
		if c.TC == tc {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	c, ok := r.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	applyCustomerFields(c, fields)
	return nil
}

func (r *stubCustomerRepo) UpdateBalance(_ context.Context, id primitive.ObjectID, version int64, fields bson.M) error {
	c, ok := r.customers[id]
	if !ok || c.Version != version {
		return repository.ErrNoMatch
	}
	applyCustomerFields(c, fields)
	c.Version++
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Watch(_ context.Context) (*mongo.ChangeStream, error) {
	return nil, repository.ErrNotFound
}

func applyCustomerFields(c *model.Customer, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "name":
			c.Name = v.(string)
		case "tc":
			c.TC = v.(string)
		case "phone":
			c.Phone = v.(string)
		case "soldItem":
			c.SoldItem = v.(string)
		case "boughtItem":
			c.BoughtItem = v.(string)
		case "total":
			c.Total = v.(decimal.Decimal)
		case "paid":
			c.Paid = v.(decimal.Decimal)
		case "debt":
			c.Debt = v.(decimal.Decimal)
		case "date":
			c.Date = v.(string)
		}
	}
}

func (r *stubCustomerRepo) snapshot() func() {
	saved := snapshotMap(r.customers)
	return func() { r.customers = saved }
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository.
type stubSaleRepo struct {
	sales map[primitive.ObjectID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[primitive.ObjectID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context, dateFrom, dateTo string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if inRange(s.Date, dateFrom, dateTo) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	if _, ok := r.sales[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.sales[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) snapshot() func() {
	saved := snapshotMap(r.sales)
	return func() { r.sales = saved }
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubPurchaseRepo is an in-memory PurchaseRepository.
type stubPurchaseRepo struct {
	purchases map[primitive.ObjectID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[primitive.ObjectID]*model.Purchase)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, dateFrom, dateTo string) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if inRange(p.Date, dateFrom, dateTo) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	if _, ok := r.purchases[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *stubPurchaseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.purchases[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.purchases, id)
	return nil
}

func (r *stubPurchaseRepo) snapshot() func() {
	saved := snapshotMap(r.purchases)
	return func() { r.purchases = saved }
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// stubTransactionRepo captures created cash movements for assertion.
type stubTransactionRepo struct {
	transactions map[primitive.ObjectID]*model.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[primitive.ObjectID]*model.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, t *model.Transaction) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if !inRange(t.Date, filter.DateFrom, filter.DateTo) {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Method != "" && t.Method != filter.Method {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransactionRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	t, ok := r.transactions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["description"]; ok {
		t.Description = v.(string)
	}
	if v, ok := fields["type"]; ok {
		t.Type = v.(string)
	}
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.transactions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *stubTransactionRepo) byType(txType string) []model.Transaction {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.Type == txType {
			out = append(out, *t)
		}
	}
	return out
}

func (r *stubTransactionRepo) snapshot() func() {
	saved := snapshotMap(r.transactions)
	return func() { r.transactions = saved }
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// stubCurrencyRepo is an in-memory CurrencyRepository.
type stubCurrencyRepo struct {
	exchanges map[primitive.ObjectID]*model.CurrencyTransaction
}

func newStubCurrencyRepo() *stubCurrencyRepo {
	return &stubCurrencyRepo{exchanges: make(map[primitive.ObjectID]*model.CurrencyTransaction)}
}

func (r *stubCurrencyRepo) Create(_ context.Context, c *model.CurrencyTransaction) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	r.exchanges[c.ID] = &cp
	return nil
}

func (r *stubCurrencyRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.CurrencyTransaction, error) {
	c, ok := r.exchanges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCurrencyRepo) List(_ context.Context, dateFrom, dateTo string) ([]model.CurrencyTransaction, error) {
	var out []model.CurrencyTransaction
	for _, c := range r.exchanges {
		if inRange(c.Date, dateFrom, dateTo) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCurrencyRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	c, ok := r.exchanges[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["amount"]; ok {
		c.Amount = v.(decimal.Decimal)
	}
	if v, ok := fields["rate"]; ok {
		c.Rate = v.(decimal.Decimal)
	}
	if v, ok := fields["total"]; ok {
		c.Total = v.(decimal.Decimal)
	}
	if v, ok := fields["type"]; ok {
		c.Type = v.(string)
	}
	return nil
}

func (r *stubCurrencyRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.exchanges[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exchanges, id)
	return nil
}

func (r *stubCurrencyRepo) snapshot() func() {
	saved := snapshotMap(r.exchanges)
	return func() { r.exchanges = saved }
}

var _ repository.CurrencyRepository = (*stubCurrencyRepo)(nil)

// stubCashRepo is an in-memory CashRepository enforcing the unique
// (operatorId, date) index.
type stubCashRepo struct {
	records map[primitive.ObjectID]*model.DailyCashRecord
}

func newStubCashRepo() *stubCashRepo {
	return &stubCashRepo{records: make(map[primitive.ObjectID]*model.DailyCashRecord)}
}

func (r *stubCashRepo) Create(_ context.Context, rec *model.DailyCashRecord) error {
	for _, existing := range r.records {
		if existing.OperatorID == rec.OperatorID && existing.Date == rec.Date {
			return duplicateKeyError()
		}
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *stubCashRepo) FindByOperatorDate(_ context.Context, operatorID, date string) (*model.DailyCashRecord, error) {
	for _, rec := range r.records {
		if rec.OperatorID == operatorID && rec.Date == date {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubCashRepo) ListByOperator(_ context.Context, operatorID string) ([]model.DailyCashRecord, error) {
	var out []model.DailyCashRecord
	for _, rec := range r.records {
		if rec.OperatorID == operatorID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubCashRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	rec, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["finalCash"]; ok {
		rec.FinalCash = v.(decimal.Decimal)
	}
	if v, ok := fields["totalMovement"]; ok {
		rec.TotalMovement = v.(decimal.Decimal)
	}
	if v, ok := fields["status"]; ok {
		rec.Status = v.(string)
	}
	return nil
}

var _ repository.CashRepository = (*stubCashRepo)(nil)

func mustOID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad object id %q: %v", hex, err)
	}
	return id
}

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
