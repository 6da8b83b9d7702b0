package storage

import (
	"database/sql"

	"bistro-backend/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateCategory(cat *domain.MenuCategory) error {
	return r.DB.QueryRow(`
		INSERT INTO menu_categories (key, title, list_image, banner_image, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		cat.Key, cat.Title, cat.ListImage, cat.BannerImage, cat.DisplayOrder, cat.IsActive).
		Scan(&cat.ID, &cat.CreatedAt)
}

func (r *PostgresRepository) ListCategories(activeOnly bool) ([]domain.MenuCategory, error) {
	query := `
		SELECT id, key, title, COALESCE(list_image, ''), COALESCE(banner_image, ''), display_order, is_active, created_at
		FROM menu_categories`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, id`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.MenuCategory
	for rows.Next() {
		var cat domain.MenuCategory
		if err := rows.Scan(&cat.ID, &cat.Key, &cat.Title, &cat.ListImage, &cat.BannerImage,
			&cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt); err != nil {
			continue
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategory(id int) (*domain.MenuCategory, error) {
	var cat domain.MenuCategory
	err := r.DB.QueryRow(`
		SELECT id, key, title, COALESCE(list_image, ''), COALESCE(banner_image, ''), display_order, is_active, created_at
		FROM menu_categories
		WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Key, &cat.Title, &cat.ListImage, &cat.BannerImage,
			&cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *PostgresRepository) UpdateCategory(cat *domain.MenuCategory) error {
	return r.DB.QueryRow(`
		UPDATE menu_categories
		SET key=$1, title=$2, list_image=$3, banner_image=$4, display_order=$5, is_active=$6
		WHERE id=$7
		RETURNING created_at`,
		cat.Key, cat.Title, cat.ListImage, cat.BannerImage, cat.DisplayOrder, cat.IsActive, cat.ID).
		Scan(&cat.CreatedAt)
}

func (r *PostgresRepository) SetCategoryActive(id int, active bool) (int64, error) {
	result, err := r.DB.Exec(`UPDATE menu_categories SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateItem(item *domain.MenuItem) error {
	return r.DB.QueryRow(`
		INSERT INTO menu_items
			(category_id, name, description, image_url, is_available, has_sizes,
			 is_discounted, is_discounted_small, is_discounted_large, price, original_price, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		item.CategoryID, item.Name, item.Description, item.ImageURL, item.IsAvailable, item.HasSizes,
		item.IsDiscounted, item.IsDiscountedSmall, item.IsDiscountedLarge,
		item.Price, item.OriginalPrice, item.DisplayOrder).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *PostgresRepository) ListItems(categoryID int, availableOnly bool) ([]domain.MenuItem, error) {
	query := `
		SELECT id, category_id, name, description, COALESCE(image_url, ''), is_available, has_sizes,
		       is_discounted, is_discounted_small, is_discounted_large, price, original_price, display_order, created_at
		FROM menu_items
		WHERE category_id = $1`
	if availableOnly {
		query += ` AND is_available`
	}
	query += ` ORDER BY display_order, id`

	rows, err := r.DB.Query(query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.ImageURL,
			&item.IsAvailable, &item.HasSizes, &item.IsDiscounted, &item.IsDiscountedSmall,
			&item.IsDiscountedLarge, &item.Price, &item.OriginalPrice, &item.DisplayOrder,
			&item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetItem(id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
		SELECT id, category_id, name, description, COALESCE(image_url, ''), is_available, has_sizes,
		       is_discounted, is_discounted_small, is_discounted_large, price, original_price, display_order, created_at
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.ImageURL,
			&item.IsAvailable, &item.HasSizes, &item.IsDiscounted, &item.IsDiscountedSmall,
			&item.IsDiscountedLarge, &item.Price, &item.OriginalPrice, &item.DisplayOrder,
			&item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateItem(item *domain.MenuItem) error {
	return r.DB.QueryRow(`
		UPDATE menu_items
		SET category_id=$1, name=$2, description=$3, image_url=$4, is_available=$5, has_sizes=$6,
		    is_discounted=$7, is_discounted_small=$8, is_discounted_large=$9,
		    price=$10, original_price=$11, display_order=$12
		WHERE id=$13
		RETURNING created_at`,
		item.CategoryID, item.Name, item.Description, item.ImageURL, item.IsAvailable, item.HasSizes,
		item.IsDiscounted, item.IsDiscountedSmall, item.IsDiscountedLarge,
		item.Price, item.OriginalPrice, item.DisplayOrder, item.ID).
		Scan(&item.CreatedAt)
}

func (r *PostgresRepository) SetItemAvailable(id int, available bool) (int64, error) {
	result, err := r.DB.Exec(`UPDATE menu_items SET is_available=$1 WHERE id=$2`, available, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateItemImage(id int, imageURL string) error {
	_, err := r.DB.Exec(`UPDATE menu_items SET image_url=$1 WHERE id=$2`, imageURL, id)
	return err
}

func (r *PostgresRepository) CreateCoupon(coupon *domain.Coupon) error {
	return r.DB.QueryRow(`
		INSERT INTO discount_coupons
			(code, discount_type, discount_value, min_order_amount, max_discount_amount,
			 usage_limit, is_active, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, used_count, created_at`,
		coupon.Code, coupon.DiscountType, coupon.DiscountValue, coupon.MinOrderAmount,
		coupon.MaxDiscountAmount, coupon.UsageLimit, coupon.IsActive,
		coupon.ValidFrom, coupon.ValidUntil).
		Scan(&coupon.ID, &coupon.UsedCount, &coupon.CreatedAt)
}

func (r *PostgresRepository) GetActiveCouponByCode(code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.DB.QueryRow(`
		SELECT id, code, discount_type, discount_value, min_order_amount, max_discount_amount,
		       usage_limit, used_count, is_active, valid_from, valid_until, created_at
		FROM discount_coupons
		WHERE code = $1 AND is_active`, code).
		Scan(&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
			&coupon.MinOrderAmount, &coupon.MaxDiscountAmount, &coupon.UsageLimit,
			&coupon.UsedCount, &coupon.IsActive, &coupon.ValidFrom, &coupon.ValidUntil,
			&coupon.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *PostgresRepository) ListCoupons() ([]domain.Coupon, error) {
	rows, err := r.DB.Query(`
		SELECT id, code, discount_type, discount_value, min_order_amount, max_discount_amount,
		       usage_limit, used_count, is_active, valid_from, valid_until, created_at
		FROM discount_coupons
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var coupon domain.Coupon
		if err := rows.Scan(&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
			&coupon.MinOrderAmount, &coupon.MaxDiscountAmount, &coupon.UsageLimit,
			&coupon.UsedCount, &coupon.IsActive, &coupon.ValidFrom, &coupon.ValidUntil,
			&coupon.CreatedAt); err != nil {
			continue
		}
		coupons = append(coupons, coupon)
	}
	return coupons, nil
}

func (r *PostgresRepository) UpdateCoupon(coupon *domain.Coupon) error {
	return r.DB.QueryRow(`
		UPDATE discount_coupons
		SET discount_type=$1, discount_value=$2, min_order_amount=$3, max_discount_amount=$4,
		    usage_limit=$5, is_active=$6, valid_from=$7, valid_until=$8
		WHERE id=$9
		RETURNING code, used_count, created_at`,
		coupon.DiscountType, coupon.DiscountValue, coupon.MinOrderAmount, coupon.MaxDiscountAmount,
		coupon.UsageLimit, coupon.IsActive, coupon.ValidFrom, coupon.ValidUntil, coupon.ID).
		Scan(&coupon.Code, &coupon.UsedCount, &coupon.CreatedAt)
}

func (r *PostgresRepository) SetCouponActive(id int, active bool) (int64, error) {
	result, err := r.DB.Exec(`UPDATE discount_coupons SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
