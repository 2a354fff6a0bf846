package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

var errFake = errors.New("fake failure")

// fakeTx runs fn inline. commitErr fails the outermost commit after fn
// succeeds, the way a lost connection would.
type fakeTx struct {
	calls     int
	depth     int
	commitErr error
}

func (t *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.depth++
	defer func() { t.depth-- }()
	if err := fn(ctx); err != nil {
		return err
	}
	if t.depth == 1 {
		return t.commitErr
	}
	return nil
}

// fakeDriverRepo

type fakeDriverRepo struct {
	drivers map[uuid.UUID]entity.Driver
}

func newFakeDriverRepo(drivers ...entity.Driver) *fakeDriverRepo {
	r := &fakeDriverRepo{drivers: make(map[uuid.UUID]entity.Driver)}
	for _, d := range drivers {
		r.drivers[d.ID] = d
	}
	return r
}

func (r *fakeDriverRepo) Create(_ context.Context, d *entity.Driver) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.drivers[d.ID] = *d
	return nil
}

func (r *fakeDriverRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDriverRepo) Update(_ context.Context, d *entity.Driver) error {
	r.drivers[d.ID] = *d
	return nil
}

func (r *fakeDriverRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.ListFilter) ([]entity.Driver, int64, error) {
	out := make([]entity.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDriverRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, d := range r.drivers {
		if d.IsActive {
			n++
		}
	}
	return n, nil
}

// fakeCustomerRepo keeps insertion order so generation output is stable

type fakeCustomerRepo struct {
	customers []entity.Customer
}

func (r *fakeCustomerRepo) find(id uuid.UUID) int {
	for i := range r.customers {
		if r.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers = append(r.customers, *c)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	i := r.find(id)
	if i < 0 {
		return nil, nil
	}
	c := r.customers[i]
	return &c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	if i := r.find(c.ID); i >= 0 {
		r.customers[i] = *c
	}
	return nil
}

func (r *fakeCustomerRepo) UpdateDailyFood(_ context.Context, id uuid.UUID, food entity.DailyFood) error {
	if i := r.find(id); i >= 0 {
		r.customers[i].DailyFood = food
	}
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.CustomerFilter) ([]entity.Customer, int64, error) {
	return r.customers, int64(len(r.customers)), nil
}

func (r *fakeCustomerRepo) ListActive(_ context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) CountActive(ctx context.Context) (int64, error) {
	active, _ := r.ListActive(ctx)
	return int64(len(active)), nil
}

// fakeCompanyRepo

type fakeCompanyRepo struct {
	companies []entity.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.companies = append(r.companies, *c)
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.ID == id {
			company := c
			return &company, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	for i := range r.companies {
		if r.companies[i].ID == c.ID {
			r.companies[i] = *c
		}
	}
	return nil
}

func (r *fakeCompanyRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.ListFilter) ([]entity.Company, int64, error) {
	return r.companies, int64(len(r.companies)), nil
}

func (r *fakeCompanyRepo) ListActive(_ context.Context) ([]entity.Company, error) {
	var out []entity.Company
	for _, c := range r.companies {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) CountActive(ctx context.Context) (int64, error) {
	active, _ := r.ListActive(ctx)
	return int64(len(active)), nil
}

// fakeDailyOrderRepo

type fakeDailyOrderRepo struct {
	orders    []entity.DailyOrder
	createErr error
	creates   int
}

func copyOrder(o entity.DailyOrder) entity.DailyOrder {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}

func (r *fakeDailyOrderRepo) ExistsForDate(_ context.Context, date time.Time) (bool, error) {
	for _, o := range r.orders {
		if o.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDailyOrderRepo) CreateBatch(_ context.Context, orders []entity.DailyOrder) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	for _, o := range orders {
		r.orders = append(r.orders, copyOrder(o))
	}
	return nil
}

func (r *fakeDailyOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.DailyOrder, error) {
	for _, o := range r.orders {
		if o.ID == id {
			order := copyOrder(o)
			return &order, nil
		}
	}
	return nil, nil
}

func (r *fakeDailyOrderRepo) SaveItem(_ context.Context, order *entity.DailyOrder, _ *entity.OrderItem) error {
	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			r.orders[i] = copyOrder(*order)
		}
	}
	return nil
}

func (r *fakeDailyOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.DailyOrderStatus) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
		}
	}
	return nil
}

func (r *fakeDailyOrderRepo) ListBetween(_ context.Context, start, end time.Time) ([]entity.DailyOrder, error) {
	var out []entity.DailyOrder
	for _, o := range r.orders {
		if !o.Date.Before(start) && !o.Date.After(end) {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *fakeDailyOrderRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.DailyOrderFilter) ([]entity.DailyOrder, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

func (r *fakeDailyOrderRepo) ListCustomerItems(_ context.Context, customerID uuid.UUID, start, end time.Time) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, o := range r.orders {
		if o.Date.Before(start) || o.Date.After(end) {
			continue
		}
		for _, item := range o.Items {
			if item.CustomerID == customerID {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

// fakeAnalyticsRepo returns canned aggregates

type fakeAnalyticsRepo struct {
	summary     repository.OrderSummaryResult
	drivers     []repository.DriverSummaryResult
	outstanding float64
	billed      float64
	collected   float64
	err         error
}

func (r *fakeAnalyticsRepo) SummarizeOrders(_ context.Context, _, _ time.Time) (*repository.OrderSummaryResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	s := r.summary
	return &s, nil
}

func (r *fakeAnalyticsRepo) SummarizeOrdersByDriver(_ context.Context, _, _ time.Time) ([]repository.DriverSummaryResult, error) {
	return r.drivers, r.err
}

func (r *fakeAnalyticsRepo) GetOutstandingBalance(_ context.Context) (float64, error) {
	return r.outstanding, r.err
}

func (r *fakeAnalyticsRepo) GetBilledRevenue(_ context.Context, _, _ int) (float64, error) {
	return r.billed, r.err
}

func (r *fakeAnalyticsRepo) GetCollectedAmount(_ context.Context, _, _ time.Time) (float64, error) {
	return r.collected, r.err
}

// fakeBillRepo stores bills by value so callers never share memory with it

type fakeBillRepo struct {
	mu        sync.Mutex
	bills     map[uuid.UUID]entity.Bill
	seq       map[string]int
	customers *fakeCustomerRepo
	failFor   map[uuid.UUID]bool
}

func newFakeBillRepo(customers *fakeCustomerRepo) *fakeBillRepo {
	return &fakeBillRepo{
		bills:     make(map[uuid.UUID]entity.Bill),
		seq:       make(map[string]int),
		customers: customers,
		failFor:   make(map[uuid.UUID]bool),
	}
}

func copyBill(b entity.Bill) entity.Bill {
	b.Items = append([]entity.BillItem(nil), b.Items...)
	return b
}

func (r *fakeBillRepo) put(b entity.Bill) *entity.Bill {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.bills[b.ID] = copyBill(b)
	return &b
}

func (r *fakeBillRepo) Create(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor[b.EntityID] {
		return errFake
	}
	for _, existing := range r.bills {
		if existing.Number == b.Number {
			return repository.ErrDuplicate
		}
	}
	stored := r.put(*b)
	b.ID = stored.ID
	b.CreatedAt = stored.CreatedAt
	return nil
}

func (r *fakeBillRepo) Update(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[b.ID] = copyBill(*b)
	return nil
}

func (r *fakeBillRepo) UpdateBalance(_ context.Context, b *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.bills[b.ID]
	stored.PaidAmount = b.PaidAmount
	stored.BalanceAmount = b.BalanceAmount
	stored.Status = b.Status
	r.bills[b.ID] = stored
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	b = copyBill(b)
	return &b, nil
}

func (r *fakeBillRepo) GetByNumber(_ context.Context, number string) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.Number == number {
			b = copyBill(b)
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) GetByPeriod(_ context.Context, entityType enum.EntityType, entityID uuid.UUID, year, month int) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.BelongsTo(entityType, entityID) && b.PeriodYear == year && b.PeriodMonth == month {
			b = copyBill(b)
			return &b, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) sorted(keep func(entity.Bill) bool, less func(a, b entity.Bill) bool) []entity.Bill {
	var out []entity.Bill
	for _, b := range r.bills {
		if keep(b) {
			out = append(out, copyBill(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *fakeBillRepo) ListOutstanding(_ context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(
		func(b entity.Bill) bool { return b.BelongsTo(entityType, entityID) && b.Status != enum.BillStatusPaid },
		func(a, b entity.Bill) bool {
			if a.PeriodYear != b.PeriodYear {
				return a.PeriodYear < b.PeriodYear
			}
			if a.PeriodMonth != b.PeriodMonth {
				return a.PeriodMonth < b.PeriodMonth
			}
			return a.CreatedAt.Before(b.CreatedAt)
		},
	), nil
}

func (r *fakeBillRepo) ListCustomerBillsForCompany(_ context.Context, companyID uuid.UUID, year, month int) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make(map[uuid.UUID]bool)
	for _, c := range r.customers.customers {
		if c.CompanyID != nil && *c.CompanyID == companyID {
			members[c.ID] = true
		}
	}
	return r.sorted(
		func(b entity.Bill) bool {
			return b.EntityType == enum.EntityTypeCustomer && members[b.EntityID] &&
				b.PeriodYear == year && b.PeriodMonth == month
		},
		func(a, b entity.Bill) bool { return a.Number < b.Number },
	), nil
}

func (r *fakeBillRepo) LinkToParent(_ context.Context, billIDs []uuid.UUID, parentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range billIDs {
		b := r.bills[id]
		parent := parentID
		b.ParentBillID = &parent
		r.bills[id] = b
	}
	return nil
}

func (r *fakeBillRepo) ListLinked(_ context.Context, parentID uuid.UUID) ([]entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(
		func(b entity.Bill) bool { return b.ParentBillID != nil && *b.ParentBillID == parentID },
		func(a, b entity.Bill) bool { return a.Number < b.Number },
	), nil
}

func (r *fakeBillRepo) NextSequence(_ context.Context, prefix string, year, month int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := prefix + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("200601")
	r.seq[key]++
	return r.seq[key], nil
}

func (r *fakeBillRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.BillFilter) ([]entity.Bill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(entity.Bill) bool { return true }, func(a, b entity.Bill) bool { return a.Number < b.Number })
	return out, int64(len(out)), nil
}

func (r *fakeBillRepo) byNumber(number string) entity.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.Number == number {
			return copyBill(b)
		}
	}
	return entity.Bill{}
}

// fakePaymentRepo keeps payments in creation order

type fakePaymentRepo struct {
	payments []entity.Payment
}

func copyPayment(p entity.Payment) entity.Payment {
	p.Allocations = append([]entity.PaymentAllocation(nil), p.Allocations...)
	return p
}

func (r *fakePaymentRepo) index(id uuid.UUID) int {
	for i := range r.payments {
		if r.payments[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Allocations {
		p.Allocations[i].PaymentID = p.ID
		if p.Allocations[i].ID == uuid.Nil {
			p.Allocations[i].ID = uuid.New()
		}
	}
	r.payments = append(r.payments, copyPayment(*p))
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	p := copyPayment(r.payments[i])
	return &p, nil
}

func (r *fakePaymentRepo) ListByEntity(_ context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.EntityType == entityType && p.EntityID == entityID {
			out = append(out, copyPayment(p))
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) AddAllocation(_ context.Context, a *entity.PaymentAllocation) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if i := r.index(a.PaymentID); i >= 0 {
		r.payments[i].Allocations = append(r.payments[i].Allocations, *a)
	}
	return nil
}

func (r *fakePaymentRepo) UpdateReference(_ context.Context, id uuid.UUID, reference string) error {
	if i := r.index(id); i >= 0 {
		r.payments[i].Reference = reference
	}
	return nil
}

func (r *fakePaymentRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.PaymentFilter) ([]entity.Payment, int64, error) {
	return r.payments, int64(len(r.payments)), nil
}

// fakeAuditRepo

type fakeAuditRepo struct {
	audits []entity.PaymentAudit
	err    error
}

func (r *fakeAuditRepo) Create(_ context.Context, a *entity.PaymentAudit) error {
	if r.err != nil {
		return r.err
	}
	r.audits = append(r.audits, *a)
	return nil
}

func (r *fakeAuditRepo) ListByBill(_ context.Context, _ uuid.UUID) ([]entity.PaymentAudit, error) {
	return r.audits, nil
}

// fakeCategoryRepo

type fakeCategoryRepo struct {
	categories map[uuid.UUID]entity.FoodCategory
}

func newFakeCategoryRepo(categories ...entity.FoodCategory) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uuid.UUID]entity.FoodCategory)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.FoodCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FoodCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.FoodCategory, error) {
	for _, c := range r.categories {
		if c.Name == name {
			category := c
			return &category, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.FoodCategory) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context, _ *pagination.PaginationParams, _ repository.ListFilter) ([]entity.FoodCategory, int64, error) {
	out := make([]entity.FoodCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

// fakeUserRepo

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

// fixture wires every service over the fakes

type fixture struct {
	tx         *fakeTx
	locker     *testLocker
	drivers    *fakeDriverRepo
	customers  *fakeCustomerRepo
	companies  *fakeCompanyRepo
	categories *fakeCategoryRepo
	orders     *fakeDailyOrderRepo
	analytics  *fakeAnalyticsRepo
	bills      *fakeBillRepo
	payments   *fakePaymentRepo
	audits     *fakeAuditRepo

	orderSvc   *OrderService
	calcSvc    *CalculationService
	paymentSvc *PaymentService
	billingSvc *BillingService
}

func newFixture() *fixture {
	f := &fixture{
		tx:         &fakeTx{},
		locker:     newTestLocker(),
		drivers:    newFakeDriverRepo(),
		customers:  &fakeCustomerRepo{},
		companies:  &fakeCompanyRepo{},
		categories: newFakeCategoryRepo(),
		orders:     &fakeDailyOrderRepo{},
		analytics:  &fakeAnalyticsRepo{},
		payments:   &fakePaymentRepo{},
		audits:     &fakeAuditRepo{},
	}
	f.bills = newFakeBillRepo(f.customers)
	f.orderSvc = NewOrderService(f.orders, f.customers, f.drivers, f.tx, f.locker, 4, time.Minute)
	f.calcSvc = NewCalculationService(f.orders, f.customers, f.analytics, DefaultReportTaxRate, DefaultCostPerMeal)
	f.paymentSvc = NewPaymentService(f.payments, f.bills, f.audits, f.tx)
	f.billingSvc = NewBillingService(f.bills, f.customers, f.companies, f.calcSvc, f.paymentSvc, f.tx)
	return f
}

// testLocker is an in-process lock table

type testLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func newTestLocker() *testLocker {
	return &testLocker{held: make(map[string]string)}
}

func (l *testLocker) Acquire(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return token, true, nil
}

func (l *testLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

func (f *fixture) addDriver(name string) entity.Driver {
	d := entity.Driver{ID: uuid.New(), Name: name, IsActive: true}
	f.drivers.drivers[d.ID] = d
	return d
}

func (f *fixture) addCategory(name string) entity.FoodCategory {
	c := entity.FoodCategory{ID: uuid.New(), Name: name, IsActive: true}
	f.categories.categories[c.ID] = c
	return c
}

func (f *fixture) addCustomer(name string, driverID uuid.UUID, companyID *uuid.UUID, food entity.DailyFood, packages ...entity.CustomerPackage) entity.Customer {
	c := entity.Customer{
		ID:        uuid.New(),
		Name:      name,
		DriverID:  driverID,
		CompanyID: companyID,
		DailyFood: food,
		IsActive:  true,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := range packages {
		packages[i].ID = uuid.New()
		packages[i].CustomerID = c.ID
	}
	c.Packages = packages
	c.ResolveBillingType(nil)
	f.customers.customers = append(f.customers.customers, c)
	return c
}

func (f *fixture) addCompany(name string) entity.Company {
	c := entity.Company{ID: uuid.New(), Name: name, IsActive: true}
	f.companies.companies = append(f.companies.companies, c)
	return c
}

// addOrderItem stores a one-item daily order for the customer on the date
func (f *fixture) addOrderItem(date time.Time, customer entity.Customer, categoryID uuid.UUID, unitPrice float64, bagFormat string) {
	order := entity.DailyOrder{
		ID:       uuid.New(),
		Date:     date,
		DriverID: customer.DriverID,
		Status:   enum.DailyOrderStatusPending,
	}
	item := entity.OrderItem{
		ID:           uuid.New(),
		DailyOrderID: order.ID,
		CustomerID:   customer.ID,
		CategoryID:   categoryID,
		MealType:     enum.MealTypeLunch,
		UnitPrice:    unitPrice,
	}
	item.ApplyBagFormat(bagFormat)
	order.Items = []entity.OrderItem{item}
	order.RecalcTotals()
	f.orders.orders = append(f.orders.orders, order)
}
