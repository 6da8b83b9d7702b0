package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"bistro-backend/internal/domain"
)

var (
	ErrPriceShape    = errors.New("sized items require a small/large price map, flat items a single amount")
	ErrMissingTitle  = errors.New("at least one translation is required")
	ErrUnknownItem   = errors.New("menu item not found")
	ErrEmptyCategory = errors.New("category key is required")
)

type CatalogService struct {
	repo        CatalogRepository
	cache       MenuCache
	defaultLang string
}

func NewCatalogService(repo CatalogRepository, cache MenuCache, defaultLang string) *CatalogService {
	if defaultLang == "" {
		defaultLang = domain.DefaultLanguage
	}
	return &CatalogService{repo: repo, cache: cache, defaultLang: defaultLang}
}

// ResolveItemView flattens a menu item for one display language. Flat items
// expose a single price, sized items a small/large pair; original prices
// appear only where the matching discount flag is set.
func ResolveItemView(item *domain.MenuItem, lang, defaultLang string) domain.MenuItemView {
	view := domain.MenuItemView{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Name:         item.Name.Resolve(lang, defaultLang, ""),
		Description:  item.Description.Resolve(lang, defaultLang, ""),
		ImageURL:     item.ImageURL,
		IsAvailable:  item.IsAvailable,
		HasSizes:     item.HasSizes,
		DisplayOrder: item.DisplayOrder,
	}

	if item.HasSizes && item.Price.Sized() {
		small, large := item.Price.Sizes.Small, item.Price.Sizes.Large
		view.PriceSmall = &small
		view.PriceLarge = &large
		if item.OriginalPrice.Valid && item.OriginalPrice.Price.Sized() {
			if item.IsDiscountedSmall {
				orig := item.OriginalPrice.Price.Sizes.Small
				view.OriginalPriceSmall = &orig
			}
			if item.IsDiscountedLarge {
				orig := item.OriginalPrice.Price.Sizes.Large
				view.OriginalPriceLarge = &orig
			}
		}
		return view
	}

	price := item.Price.Flat
	view.Price = &price
	if item.IsDiscounted && item.OriginalPrice.Valid && !item.OriginalPrice.Price.Sized() {
		orig := item.OriginalPrice.Price.Flat
		view.OriginalPrice = &orig
	}
	return view
}

// Menu returns the active categories with their available items, resolved
// for one language. Responses are cached per language and rebuilt after any
// staff mutation.
func (s *CatalogService) Menu(ctx context.Context, lang string) ([]domain.MenuCategoryView, error) {
	if lang == "" {
		lang = s.defaultLang
	}

	if s.cache != nil {
		if cached, err := s.cache.GetMenu(ctx, lang); err == nil && len(cached) > 0 {
			var menu []domain.MenuCategoryView
			if err := json.Unmarshal(cached, &menu); err == nil {
				return menu, nil
			}
		}
	}

	categories, err := s.repo.ListCategories(true)
	if err != nil {
		return nil, err
	}

	menu := []domain.MenuCategoryView{}
	for _, cat := range categories {
		items, err := s.repo.ListItems(cat.ID, true)
		if err != nil {
			return nil, err
		}
		catView := domain.MenuCategoryView{
			ID:           cat.ID,
			Key:          cat.Key,
			Title:        cat.Title.Resolve(lang, s.defaultLang, cat.Key),
			ListImage:    cat.ListImage,
			BannerImage:  cat.BannerImage,
			DisplayOrder: cat.DisplayOrder,
			Items:        []domain.MenuItemView{},
		}
		for i := range items {
			catView.Items = append(catView.Items, ResolveItemView(&items[i], lang, s.defaultLang))
		}
		menu = append(menu, catView)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(menu); err == nil {
			if err := s.cache.SetMenu(ctx, lang, payload); err != nil {
				log.Printf("menu cache set failed: %v", err)
			}
		}
	}
	return menu, nil
}

// validateItem enforces the price-shape invariant once, before anything is
// persisted: has_sizes decides the variant of price and original_price.
func validateItem(item *domain.MenuItem) error {
	if len(item.Name) == 0 {
		return ErrMissingTitle
	}
	if item.HasSizes != item.Price.Sized() {
		return ErrPriceShape
	}
	if item.OriginalPrice.Valid && item.OriginalPrice.Price.Sized() != item.HasSizes {
		return ErrPriceShape
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, cat *domain.MenuCategory) error {
	if cat.Key == "" {
		return ErrEmptyCategory
	}
	if len(cat.Title) == 0 {
		return ErrMissingTitle
	}
	if err := s.repo.CreateCategory(cat); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListCategories() ([]domain.MenuCategory, error) {
	return s.repo.ListCategories(false)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, cat *domain.MenuCategory) error {
	if cat.Key == "" {
		return ErrEmptyCategory
	}
	if err := s.repo.UpdateCategory(cat); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) SetCategoryActive(ctx context.Context, id int, active bool) (int64, error) {
	rows, err := s.repo.SetCategoryActive(id, active)
	if err == nil && rows > 0 {
		s.invalidate(ctx)
	}
	return rows, err
}

func (s *CatalogService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.CreateItem(item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListItems(categoryID int) ([]domain.MenuItem, error) {
	return s.repo.ListItems(categoryID, false)
}

func (s *CatalogService) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.UpdateItem(item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) SetItemAvailable(ctx context.Context, id int, available bool) (int64, error) {
	rows, err := s.repo.SetItemAvailable(id, available)
	if err == nil && rows > 0 {
		s.invalidate(ctx)
	}
	return rows, err
}

func (s *CatalogService) UpdateItemImage(ctx context.Context, id int, imageURL string) error {
	if err := s.repo.UpdateItemImage(id, imageURL); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(ctx); err != nil {
		log.Printf("menu cache invalidation failed: %v", err)
	}
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
