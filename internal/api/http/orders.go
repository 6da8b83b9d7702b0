package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bistro-backend/internal/service"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, payment, err := h.Orders.Create(r.Context(), &req)
	if err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"order":   order,
		"payment": payment,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(mux.Vars(r)["orderNumber"])
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	respond(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.URL.Query().Get("status"))
	if err != nil {
		internalError(w, "list orders", err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) paymentCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderNumber string `json:"order_number"`
		Status      string `json:"status"`
		Reference   string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OrderNumber == "" {
		respondError(w, http.StatusBadRequest, "order_number is required")
		return
	}

	if err := h.Orders.UpdatePayment(r.Context(), req.OrderNumber, req.Status, req.Reference); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"order_number": req.OrderNumber,
		"status":       req.Status,
	})
}

func (h *Handler) refundOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["orderNumber"]
	if err := h.Orders.Refund(r.Context(), orderNumber); err != nil {
		businessError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{
		"order_number": orderNumber,
		"status":       "refunded",
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(mux.Vars(r)["orderNumber"])
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	if len(qr) == 0 {
		respondError(w, http.StatusNotFound, "QR code not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}
