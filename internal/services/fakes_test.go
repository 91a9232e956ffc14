package services

import (
	"errors"
	"sort"
	"time"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/query"
	"expensetracker/internal/repository"
)

func init() {
	logger.Init("test")
}

// fakeCategories is an in-memory CategoryRepository.
type fakeCategories struct {
	rows    map[uint]models.Category
	nextID  uint
	inUse   map[uint]bool
	failure error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{rows: map[uint]models.Category{}, inUse: map[uint]bool{}}
}

func (f *fakeCategories) add(name string) models.Category {
	f.nextID++
	c := models.Category{
		Base:  models.Base{ID: f.nextID, CreatedAt: time.Now()},
		Name:  name,
		Color: models.DefaultCategoryColor,
		Icon:  models.DefaultCategoryIcon,
	}
	f.rows[c.ID] = c
	return c
}

func (f *fakeCategories) List() ([]models.Category, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	out := make([]models.Category, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) FindByID(id uint) (*models.Category, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategories) FindByName(name string) (*models.Category, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	for _, c := range f.rows {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategories) Create(c *models.Category) error {
	if f.failure != nil {
		return f.failure
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) Update(c *models.Category) error {
	if f.failure != nil {
		return f.failure
	}
	if _, ok := f.rows[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategories) Delete(id uint) error {
	if f.failure != nil {
		return f.failure
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if f.inUse[id] {
		return errors.Join(repository.ErrReferenced, errors.New("FOREIGN KEY constraint failed"))
	}
	delete(f.rows, id)
	return nil
}

// fakeExpenses is an in-memory ExpenseRepository. Aggregations return the
// canned rows and record the window they were asked for.
type fakeExpenses struct {
	categories *fakeCategories
	rows       map[uint]models.Expense
	nextID     uint
	failure    error

	summary     models.Summary
	totals      []models.CategoryBreakdown
	trend       []models.MonthlyTrend
	comparison  []models.CategoryComparison
	windows     []models.CategoryGrowth
	gotSince    models.Date
	gotCurrent  models.Date
	gotPrevious models.Date
	gotWindow   query.DateRange
}

func newFakeExpenses(categories *fakeCategories) *fakeExpenses {
	return &fakeExpenses{categories: categories, rows: map[uint]models.Expense{}}
}

func (f *fakeExpenses) detail(e models.Expense) models.ExpenseDetail {
	c := f.categories.rows[e.CategoryID]
	return models.ExpenseDetail{Expense: e, CategoryName: c.Name, CategoryColor: c.Color, CategoryIcon: c.Icon}
}

func (f *fakeExpenses) List(filter query.ExpenseFilter, _ query.Sort) ([]models.ExpenseDetail, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	out := []models.ExpenseDetail{}
	for _, e := range f.rows {
		if filter.CategoryID != nil && e.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, f.detail(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeExpenses) FindByID(id uint) (*models.ExpenseDetail, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	e, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := f.detail(e)
	return &d, nil
}

func (f *fakeExpenses) Create(e *models.Expense) error {
	if f.failure != nil {
		return f.failure
	}
	if _, ok := f.categories.rows[e.CategoryID]; !ok {
		return repository.ErrDangling
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Update(e *models.Expense) error {
	if f.failure != nil {
		return f.failure
	}
	if _, ok := f.rows[e.ID]; !ok {
		return repository.ErrNotFound
	}
	e.UpdatedAt = time.Now()
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Delete(id uint) error {
	if f.failure != nil {
		return f.failure
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeExpenses) Summary(window query.DateRange) (*models.Summary, error) {
	f.gotWindow = window
	if f.failure != nil {
		return nil, f.failure
	}
	s := f.summary
	return &s, nil
}

func (f *fakeExpenses) CategoryTotals(window query.DateRange) ([]models.CategoryBreakdown, error) {
	f.gotWindow = window
	if f.failure != nil {
		return nil, f.failure
	}
	return append([]models.CategoryBreakdown{}, f.totals...), nil
}

func (f *fakeExpenses) MonthlyTrend(since models.Date) ([]models.MonthlyTrend, error) {
	f.gotSince = since
	if f.failure != nil {
		return nil, f.failure
	}
	return append([]models.MonthlyTrend{}, f.trend...), nil
}

func (f *fakeExpenses) CategoryComparison(since models.Date) ([]models.CategoryComparison, error) {
	f.gotSince = since
	if f.failure != nil {
		return nil, f.failure
	}
	return append([]models.CategoryComparison{}, f.comparison...), nil
}

func (f *fakeExpenses) CategoryWindows(currentFrom, previousFrom models.Date) ([]models.CategoryGrowth, error) {
	f.gotCurrent, f.gotPrevious = currentFrom, previousFrom
	if f.failure != nil {
		return nil, f.failure
	}
	return append([]models.CategoryGrowth{}, f.windows...), nil
}
