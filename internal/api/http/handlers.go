package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"bistro-backend/internal/domain"
	"bistro-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog   service.CatalogServiceInterface
	Coupons   service.CouponServiceInterface
	Orders    service.OrderServiceInterface
	Surveys   service.SurveyServiceInterface
	Dashboard service.DashboardServiceInterface
	Auth      service.AuthServiceInterface
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	coupons service.CouponServiceInterface,
	orders service.OrderServiceInterface,
	surveys service.SurveyServiceInterface,
	dashboard service.DashboardServiceInterface,
	auth service.AuthServiceInterface,
) *Handler {
	return &Handler{
		Catalog:   catalog,
		Coupons:   coupons,
		Orders:    orders,
		Surveys:   surveys,
		Dashboard: dashboard,
		Auth:      auth,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/coupons/validate", h.validateCoupon).Methods("POST")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{orderNumber}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{orderNumber}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/payments/callback", h.paymentCallback).Methods("POST")
	r.HandleFunc("/api/surveys", h.submitSurvey).Methods("POST")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")

	staff := []string{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee}
	managers := []string{domain.RoleAdmin, domain.RoleManager}
	admins := []string{domain.RoleAdmin}

	r.HandleFunc("/api/admin/dashboard", h.requireRole(h.dashboardStats, staff...)).Methods("GET")
	r.HandleFunc("/api/admin/orders", h.requireRole(h.listOrders, staff...)).Methods("GET")
	r.HandleFunc("/api/admin/orders/{orderNumber}/refund", h.requireRole(h.refundOrder, admins...)).Methods("POST")
	r.HandleFunc("/api/admin/surveys", h.requireRole(h.listSurveys, staff...)).Methods("GET")

	r.HandleFunc("/api/admin/categories", h.requireRole(h.listCategories, staff...)).Methods("GET")
	r.HandleFunc("/api/admin/categories", h.requireRole(h.createCategory, managers...)).Methods("POST")
	r.HandleFunc("/api/admin/categories/{id}", h.requireRole(h.updateCategory, managers...)).Methods("PUT")
	r.HandleFunc("/api/admin/categories/{id}/active", h.requireRole(h.setCategoryActive, managers...)).Methods("PATCH")
	r.HandleFunc("/api/admin/categories/{id}/items", h.requireRole(h.listItems, staff...)).Methods("GET")
	r.HandleFunc("/api/admin/categories/{id}/items", h.requireRole(h.createItem, managers...)).Methods("POST")
	r.HandleFunc("/api/admin/items/{id}", h.requireRole(h.updateItem, managers...)).Methods("PUT")
	r.HandleFunc("/api/admin/items/{id}/availability", h.requireRole(h.setItemAvailable, staff...)).Methods("PATCH")
	r.HandleFunc("/api/admin/items/{id}/image", h.requireRole(h.uploadItemImage, managers...)).Methods("POST")

	r.HandleFunc("/api/admin/coupons", h.requireRole(h.listCoupons, staff...)).Methods("GET")
	r.HandleFunc("/api/admin/coupons", h.requireRole(h.createCoupon, managers...)).Methods("POST")
	r.HandleFunc("/api/admin/coupons/{id}", h.requireRole(h.updateCoupon, managers...)).Methods("PUT")
	r.HandleFunc("/api/admin/coupons/{id}/active", h.requireRole(h.setCouponActive, managers...)).Methods("PATCH")

	r.HandleFunc("/api/admin/employees/{id}/deactivate", h.requireRole(h.deactivateEmployee, admins...)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "bistro-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Catalog.Menu(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		internalError(w, "load menu", err)
		return
	}
	respond(w, http.StatusOK, menu)
}

func (h *Handler) validateCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string  `json:"code"`
		OrderAmount float64 `json:"order_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.Coupons.Validate(req.Code, req.OrderAmount)
	if err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	emp, err := h.Auth.Register(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, emp)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, emp, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrEmployeeInactive) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		internalError(w, "login", err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"employee": emp,
	})
}

func (h *Handler) deactivateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rows, err := h.Auth.Deactivate(id)
	if err != nil {
		internalError(w, "deactivate employee", err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "employee not found")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"deactivated": true})
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context(), time.Now())
	if err != nil {
		internalError(w, "dashboard stats", err)
		return
	}
	respond(w, http.StatusOK, stats)
}

// businessError maps expected service errors to a client status with the
// human-readable message; anything unexpected becomes a generic 500.
func businessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrCouponInvalid),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrCouponMinOrder),
		errors.Is(err, domain.ErrCouponExhausted):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidOrderAmount),
		errors.Is(err, service.ErrMissingCustomer),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrMissingRespondent),
		errors.Is(err, service.ErrRatingRange),
		errors.Is(err, service.ErrRecommendRange),
		errors.Is(err, service.ErrCouponFields),
		errors.Is(err, service.ErrPriceShape),
		errors.Is(err, service.ErrMissingTitle),
		errors.Is(err, service.ErrEmptyCategory),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrUnknownRole),
		errors.Is(err, service.ErrUnknownPaymentInfo):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		internalError(w, "request", err)
	}
}

func internalError(w http.ResponseWriter, action string, err error) {
	log.Printf("%s failed: %v", action, err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
