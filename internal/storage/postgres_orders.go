package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"bistro-backend/internal/domain"

	"github.com/lib/pq"
)

func (r *PostgresRepository) UpsertCustomerByPhone(c *domain.Customer) error {
	// Single conditional upsert keyed on the phone unique constraint; the
	// DO UPDATE fires only when the details actually changed, so an
	// identical re-submission performs no write.
	err := r.DB.QueryRow(`
		INSERT INTO customers (name, phone, address, email)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name,
		    address = EXCLUDED.address,
		    email = EXCLUDED.email,
		    updated_at = NOW()
		WHERE (customers.name, customers.address, customers.email)
		      IS DISTINCT FROM (EXCLUDED.name, EXCLUDED.address, EXCLUDED.email)
		RETURNING id`,
		c.Name, c.Phone, c.Address, c.Email).Scan(&c.ID)
	if err == sql.ErrNoRows {
		return r.DB.QueryRow(`SELECT id FROM customers WHERE phone = $1`, c.Phone).Scan(&c.ID)
	}
	return err
}

// CreateOrder inserts the order and, when a coupon code is attached, consumes
// one use of the coupon in the same transaction. The used_count increment is
// conditional on the usage limit so two concurrent orders cannot both take
// the last remaining use.
func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if order.DiscountCode != "" {
		result, err := tx.Exec(`
			UPDATE discount_coupons
			SET used_count = used_count + 1
			WHERE code = $1 AND is_active
			  AND (valid_until IS NULL OR valid_until > NOW())
			  AND (usage_limit IS NULL OR used_count < usage_limit)`,
			order.DiscountCode)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrCouponExhausted
		}
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("serialize order items: %w", err)
	}

	err = tx.QueryRow(`
		INSERT INTO orders
			(order_number, customer_name, customer_phone, customer_address, customer_email,
			 items, subtotal, discount_amount, discount_code, total,
			 payment_status, payment_reference, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), $10, $11, $12, NULLIF($13, ''))
		RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.CustomerName, order.CustomerPhone, order.CustomerAddress,
		order.CustomerEmail, items, order.Subtotal, order.DiscountAmount, order.DiscountCode,
		order.Total, order.PaymentStatus, order.PaymentReference, order.Notes).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrOrderNumberTaken
		}
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	var order domain.Order
	var items []byte
	err := r.DB.QueryRow(`
		SELECT id, order_number, customer_name, customer_phone, customer_address,
		       COALESCE(customer_email, ''), items, subtotal, discount_amount,
		       COALESCE(discount_code, ''), total, payment_status,
		       COALESCE(payment_reference, ''), COALESCE(notes, ''), created_at, updated_at
		FROM orders
		WHERE order_number = $1`, orderNumber).
		Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerPhone,
			&order.CustomerAddress, &order.CustomerEmail, &items, &order.Subtotal,
			&order.DiscountAmount, &order.DiscountCode, &order.Total, &order.PaymentStatus,
			&order.PaymentReference, &order.Notes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &order, nil
}

func (r *PostgresRepository) ListOrders(status string) ([]domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, customer_phone, customer_address,
		       COALESCE(customer_email, ''), items, subtotal, discount_amount,
		       COALESCE(discount_code, ''), total, payment_status,
		       COALESCE(payment_reference, ''), COALESCE(notes, ''), created_at, updated_at
		FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE payment_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var items []byte
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerPhone,
			&order.CustomerAddress, &order.CustomerEmail, &items, &order.Subtotal,
			&order.DiscountAmount, &order.DiscountCode, &order.Total, &order.PaymentStatus,
			&order.PaymentReference, &order.Notes, &order.CreatedAt, &order.UpdatedAt); err != nil {
			continue
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdatePaymentStatus moves an order from one payment status to another. The
// previous status is part of the WHERE clause so a stale transition updates
// zero rows instead of clobbering a concurrent change.
func (r *PostgresRepository) UpdatePaymentStatus(orderNumber, from, to, reference string) (int64, error) {
	result, err := r.DB.Exec(`
		UPDATE orders
		SET payment_status = $1,
		    payment_reference = COALESCE(NULLIF($2, ''), payment_reference),
		    updated_at = NOW()
		WHERE order_number = $3 AND payment_status = $4`,
		to, reference, orderNumber, from)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveOrderQRCode(orderNumber string, qr []byte) error {
	_, err := r.DB.Exec(`UPDATE orders SET qr_code = $1 WHERE order_number = $2`, qr, orderNumber)
	return err
}

func (r *PostgresRepository) GetOrderQRCode(orderNumber string) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRow(`SELECT qr_code FROM orders WHERE order_number = $1`, orderNumber).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

// DailyOrderStats is the database fallback behind the Redis dashboard
// counters: orders created on the given day, with failed and refunded ones
// excluded from revenue (matching what the aggregator maintains).
func (r *PostgresRepository) DailyOrderStats(date string) (int, float64, error) {
	var count int
	var revenue float64
	err := r.DB.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(total) FILTER (WHERE payment_status NOT IN ('failed', 'refunded')), 0)
		FROM orders
		WHERE created_at::date = $1::date`, date).
		Scan(&count, &revenue)
	return count, revenue, err
}

func (r *PostgresRepository) InsertSurvey(survey *domain.Survey) error {
	return r.DB.QueryRow(`
		INSERT INTO customer_surveys
			(name, phone, email, food_rating, service_rating, atmosphere_rating, value_rating,
			 recommend_score, liked, improve, marketing_opt_in, newsletter_opt_in,
			 submitted_ip, submitted_language, user_agent)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8,
		        NULLIF($9, ''), NULLIF($10, ''), $11, $12, NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''))
		RETURNING id, created_at`,
		survey.Name, survey.Phone, survey.Email, survey.FoodRating, survey.ServiceRating,
		survey.AtmosphereRating, survey.ValueRating, survey.RecommendScore, survey.Liked,
		survey.Improve, survey.MarketingOptIn, survey.NewsletterOptIn, survey.SubmittedIP,
		survey.SubmittedLanguage, survey.UserAgent).
		Scan(&survey.ID, &survey.CreatedAt)
}

func (r *PostgresRepository) ListSurveys() ([]domain.Survey, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), food_rating, service_rating,
		       atmosphere_rating, value_rating, recommend_score, COALESCE(liked, ''),
		       COALESCE(improve, ''), marketing_opt_in, newsletter_opt_in,
		       COALESCE(submitted_ip, ''), COALESCE(submitted_language, ''),
		       COALESCE(user_agent, ''), created_at
		FROM customer_surveys
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surveys []domain.Survey
	for rows.Next() {
		var s domain.Survey
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.FoodRating, &s.ServiceRating,
			&s.AtmosphereRating, &s.ValueRating, &s.RecommendScore, &s.Liked, &s.Improve,
			&s.MarketingOptIn, &s.NewsletterOptIn, &s.SubmittedIP, &s.SubmittedLanguage,
			&s.UserAgent, &s.CreatedAt); err != nil {
			continue
		}
		surveys = append(surveys, s)
	}
	return surveys, nil
}

func (r *PostgresRepository) CreateEmployee(emp *domain.Employee) error {
	err := r.DB.QueryRow(`
		INSERT INTO employees (email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		emp.Email, emp.PasswordHash, emp.Name, emp.Role, emp.IsActive).
		Scan(&emp.ID, &emp.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetEmployeeByEmail(email string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.DB.QueryRow(`
		SELECT id, email, password_hash, name, role, is_active, created_at
		FROM employees
		WHERE email = $1`, email).
		Scan(&emp.ID, &emp.Email, &emp.PasswordHash, &emp.Name, &emp.Role, &emp.IsActive, &emp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *PostgresRepository) SetEmployeeActive(id int, active bool) (int64, error) {
	result, err := r.DB.Exec(`UPDATE employees SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
