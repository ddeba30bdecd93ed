// README: Customer order handlers: create, list, detail, image upload.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"omaga/internal/http/middleware"
	"omaga/internal/modules/driver"
	"omaga/internal/modules/media"
	"omaga/internal/modules/order"
	"omaga/internal/types"
)

type OrderHandler struct {
	order   *order.Service
	media   *media.Service
	drivers *driver.Service
}

func NewOrderHandler(orderSvc *order.Service, mediaSvc *media.Service, driverSvc *driver.Service) *OrderHandler {
	return &OrderHandler{order: orderSvc, media: mediaSvc, drivers: driverSvc}
}

type orderView struct {
	ID          string     `json:"id"`
	Kind        string     `json:"type"`
	PickupAddr  string     `json:"pickup_addr"`
	DestAddr    string     `json:"dest_addr"`
	Notes       string     `json:"notes,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func viewOrder(o *order.Order) orderView {
	return orderView{
		ID:          string(o.ID),
		Kind:        string(o.Kind),
		PickupAddr:  o.PickupAddr,
		DestAddr:    o.DestAddr,
		Notes:       o.Notes,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
	}
}

type customerOrderView struct {
	orderView
	DriverName    *string `json:"driver_name"`
	DriverContact *string `json:"driver_contact"`
}

type createOrderReq struct {
	Kind              string  `json:"type"`
	PickupAddr        string  `json:"pickup_addr"`
	DestAddr          string  `json:"dest_addr"`
	Notes             string  `json:"notes"`
	PreferredDriverID *string `json:"preferred_driver_id"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	caller := middleware.Caller(c)
	if caller.Role != types.RoleCustomer {
		writeError(c, http.StatusForbidden, "forbidden")
		return
	}
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := order.CreateCommand{
		CustomerID: caller.ID,
		Kind:       order.Kind(req.Kind),
		PickupAddr: req.PickupAddr,
		DestAddr:   req.DestAddr,
		Notes:      req.Notes,
	}
	if req.PreferredDriverID != nil && *req.PreferredDriverID != "" {
		id := types.ID(*req.PreferredDriverID)
		cmd.PreferredDriverID = &id
	}
	o, err := h.order.Create(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, viewOrder(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.order.ListByCustomer(c.Request.Context(), middleware.Caller(c).ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]customerOrderView, 0, len(orders))
	for i := range orders {
		out = append(out, customerOrderView{
			orderView:     viewOrder(&orders[i].Order),
			DriverName:    orders[i].DriverName,
			DriverContact: orders[i].DriverContact,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": out})
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.loadVisibleOrder(c)
	if err != nil {
		return
	}
	writeJSON(c, http.StatusOK, viewOrder(o))
}

// UploadImage attaches a photo to an order the caller can see.
func (h *OrderHandler) UploadImage(c *gin.Context) {
	o, err := h.loadVisibleOrder(c)
	if err != nil {
		return
	}
	data, contentType, err := readImagePart(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid upload")
		return
	}
	img, err := h.media.UploadOrderImage(c.Request.Context(), o.ID, middleware.Caller(c).ID, contentType, data)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"id": img.ID, "image_url": img.URL})
}

// loadVisibleOrder fetches the order and enforces visibility: the requesting
// customer, the assigned driver's user, or an admin. On failure it writes the
// response itself and returns a non-nil error as a signal.
func (h *OrderHandler) loadVisibleOrder(c *gin.Context) (*order.Order, error) {
	id := types.ID(c.Param("id"))
	o, err := h.order.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return nil, err
	}
	caller := middleware.Caller(c)
	if caller.Role == types.RoleAdmin || o.CustomerID == caller.ID {
		return o, nil
	}
	if caller.Role == types.RoleDriver && o.DriverID != nil {
		rec, recErr := h.drivers.EnsureRecord(c.Request.Context(), caller.ID)
		if recErr == nil && rec.ID == *o.DriverID {
			return o, nil
		}
	}
	writeError(c, http.StatusForbidden, "forbidden")
	return nil, order.ErrNotAssigned
}
