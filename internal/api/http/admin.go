package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"bistro-backend/internal/domain"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories()
	if err != nil {
		internalError(w, "list categories", err)
		return
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var cat domain.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.Catalog.CreateCategory(r.Context(), &cat); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, cat)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var cat domain.MenuCategory
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cat.ID = id
	if err := h.Catalog.UpdateCategory(r.Context(), &cat); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, cat)
}

func (h *Handler) setCategoryActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rows, err := h.Catalog.SetCategoryActive(r.Context(), id, req.Active)
	if err != nil {
		internalError(w, "set category active", err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.Catalog.ListItems(id)
	if err != nil {
		internalError(w, "list items", err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item.CategoryID = id
	if err := h.Catalog.CreateItem(r.Context(), &item); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item.ID = id
	if err := h.Catalog.UpdateItem(r.Context(), &item); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) setItemAvailable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rows, err := h.Catalog.SetItemAvailable(r.Context(), id, req.Available)
	if err != nil {
		internalError(w, "set item availability", err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"available": req.Available})
}

func (h *Handler) uploadItemImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "file too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "error retrieving file")
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if !allowedTypes[header.Header.Get("Content-Type")] {
		respondError(w, http.StatusBadRequest, "invalid file type, only JPEG, PNG, GIF, WebP allowed")
		return
	}

	uploadDir := "./uploads"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		internalError(w, "create upload directory", err)
		return
	}

	filename := "item_" + strconv.Itoa(id) + "_" + header.Filename
	path := filepath.Join(uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		internalError(w, "save file", err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		internalError(w, "save file", err)
		return
	}

	imageURL := "/uploads/" + filename
	if err := h.Catalog.UpdateItemImage(r.Context(), id, imageURL); err != nil {
		internalError(w, "update item image", err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Coupons.List()
	if err != nil {
		internalError(w, "list coupons", err)
		return
	}
	respond(w, http.StatusOK, coupons)
}

func (h *Handler) createCoupon(w http.ResponseWriter, r *http.Request) {
	var coupon domain.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	coupon.IsActive = true
	if err := h.Coupons.Create(&coupon); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, coupon)
}

func (h *Handler) updateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var coupon domain.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	coupon.ID = id
	if err := h.Coupons.Update(&coupon); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, coupon)
}

func (h *Handler) setCouponActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rows, err := h.Coupons.SetActive(id, req.Active)
	if err != nil {
		internalError(w, "set coupon active", err)
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "coupon not found")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"active": req.Active})
}
