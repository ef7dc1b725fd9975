package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
)

// memStore backs every fake repository so that cross-entity checks
// (category in use, ownership of referenced ids) see the same data.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]models.Category
	companies  map[int64]models.Company
	products   map[int64]models.Product
	settings   map[int64]models.Setting // by user id
	failWrites error
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[int64]models.Category{},
		companies:  map[int64]models.Company{},
		products:   map[int64]models.Product{},
		settings:   map[int64]models.Setting{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func matches(name, search string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func paginate[T any](items []T, page models.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func limitOptions(options []models.Option, limit int) []models.Option {
	sort.Slice(options, func(i, j int) bool {
		return strings.ToLower(options[i].Name) < strings.ToLower(options[j].Name)
	})
	if len(options) > limit {
		options = options[:limit]
	}
	return options
}

// --- categories ---

type fakeCategoryRepo struct{ m *memStore }

func (r fakeCategoryRepo) CreateCategory(_ context.Context, _ repositories.SQLExecutor, c *models.Category) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWrites != nil {
		return 0, r.m.failWrites
	}
	c.ID = r.m.id()
	r.m.categories[c.ID] = *c
	return c.ID, nil
}

func (r fakeCategoryRepo) GetCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r fakeCategoryRepo) GetCategories(_ context.Context, userID int64, search string, page models.PageRequest) ([]models.Category, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []models.Category
	for _, c := range r.m.categories {
		if c.UserID == userID && matches(c.Name, search) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name) })
	return paginate(all, page), len(all), nil
}

func (r fakeCategoryRepo) SearchCategoryOptions(_ context.Context, userID int64, search string, limit int) ([]models.Option, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	options := []models.Option{}
	for _, c := range r.m.categories {
		if c.UserID == userID && matches(c.Name, search) {
			options = append(options, models.Option{ID: c.ID, Name: c.Name})
		}
	}
	return limitOptions(options, limit), nil
}

func (r fakeCategoryRepo) CategoryBelongsToUser(_ context.Context, userID, categoryID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[categoryID]
	return ok && c.UserID == userID, nil
}

func (r fakeCategoryRepo) UpdateCategory(_ context.Context, _ repositories.SQLExecutor, c *models.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.categories[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.categories[c.ID] = *c
	return nil
}

func (r fakeCategoryRepo) DeleteCategory(_ context.Context, _ repositories.SQLExecutor, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.products {
		if p.CategoryID == id {
			return repositories.ErrForeignKey
		}
	}
	delete(r.m.categories, id)
	return nil
}

// --- companies ---

type fakeCompanyRepo struct{ m *memStore }

func (r fakeCompanyRepo) CreateCompany(_ context.Context, _ repositories.SQLExecutor, c *models.Company) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.ID = r.m.id()
	r.m.companies[c.ID] = *c
	return c.ID, nil
}

func (r fakeCompanyRepo) GetCompanyByID(_ context.Context, id int64) (*models.Company, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.companies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r fakeCompanyRepo) GetCompanies(_ context.Context, userID int64, search string, page models.PageRequest) ([]models.Company, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []models.Company
	for _, c := range r.m.companies {
		if c.UserID == userID && matches(c.Name, search) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name) })
	return paginate(all, page), len(all), nil
}

func (r fakeCompanyRepo) SearchCompanyOptions(_ context.Context, userID int64, search string, limit int) ([]models.Option, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	options := []models.Option{}
	for _, c := range r.m.companies {
		if c.UserID == userID && matches(c.Name, search) {
			options = append(options, models.Option{ID: c.ID, Name: c.Name})
		}
	}
	return limitOptions(options, limit), nil
}

func (r fakeCompanyRepo) CompanyBelongsToUser(_ context.Context, userID, companyID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.companies[companyID]
	return ok && c.UserID == userID, nil
}

func (r fakeCompanyRepo) UpdateCompany(_ context.Context, _ repositories.SQLExecutor, c *models.Company) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.companies[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.m.companies[c.ID] = *c
	return nil
}

func (r fakeCompanyRepo) DeleteCompany(_ context.Context, _ repositories.SQLExecutor, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.products {
		if p.CompanyID == id {
			return repositories.ErrForeignKey
		}
	}
	delete(r.m.companies, id)
	return nil
}

// --- products ---

type fakeProductRepo struct{ m *memStore }

func (r fakeProductRepo) duplicate(p *models.Product) bool {
	for _, other := range r.m.products {
		if other.UserID == p.UserID && other.Barcode == p.Barcode && other.ID != p.ID {
			return true
		}
	}
	return false
}

func (r fakeProductRepo) CreateProduct(_ context.Context, _ repositories.SQLExecutor, p *models.Product) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.duplicate(p) {
		return 0, repositories.ErrDuplicateKey
	}
	p.ID = r.m.id()
	r.m.products[p.ID] = *p
	return p.ID, nil
}

func (r fakeProductRepo) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r fakeProductRepo) GetProducts(_ context.Context, userID int64, search string, page models.PageRequest) ([]models.Product, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []models.Product
	for _, p := range r.m.products {
		if p.UserID == userID && matches(p.Name, search) {
			if c, ok := r.m.categories[p.CategoryID]; ok {
				p.Category = &models.Option{ID: c.ID, Name: c.Name}
			}
			if co, ok := r.m.companies[p.CompanyID]; ok {
				p.Company = &models.Option{ID: co.ID, Name: co.Name}
			}
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name) })
	return paginate(all, page), len(all), nil
}

func (r fakeProductRepo) BarcodeExists(_ context.Context, userID int64, barcode string, excludeID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.duplicate(&models.Product{ID: excludeID, UserID: userID, Barcode: barcode}), nil
}

func (r fakeProductRepo) UpdateProduct(_ context.Context, _ repositories.SQLExecutor, p *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	if r.duplicate(p) {
		return repositories.ErrDuplicateKey
	}
	r.m.products[p.ID] = *p
	return nil
}

func (r fakeProductRepo) DeleteProduct(_ context.Context, _ repositories.SQLExecutor, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.products, id)
	return nil
}

// --- settings ---

type fakeSettingRepo struct{ m *memStore }

func (r fakeSettingRepo) GetSettingByUserID(_ context.Context, userID int64) (*models.Setting, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.settings[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r fakeSettingRepo) CreateSettingIfAbsent(_ context.Context, _ repositories.SQLExecutor, s *models.Setting) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.settings[s.UserID]; ok {
		return false, nil
	}
	s.ID = r.m.id()
	r.m.settings[s.UserID] = *s
	return true, nil
}

func (r fakeSettingRepo) UpsertSetting(_ context.Context, _ repositories.SQLExecutor, s *models.Setting) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWrites != nil {
		return r.m.failWrites
	}
	if existing, ok := r.m.settings[s.UserID]; ok {
		s.ID = existing.ID
		if s.BusinessLogo == nil {
			s.BusinessLogo = existing.BusinessLogo
		}
	} else {
		s.ID = r.m.id()
	}
	r.m.settings[s.UserID] = *s
	return nil
}

var errWriteFailed = errors.New("write failed")
