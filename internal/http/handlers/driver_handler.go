// README: Driver handlers: availability, work list, order lifecycle actions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"omaga/internal/http/middleware"
	"omaga/internal/modules/driver"
	"omaga/internal/modules/order"
	"omaga/internal/types"
)

type DriverHandler struct {
	drivers *driver.Service
	order   *order.Service
}

func NewDriverHandler(driverSvc *driver.Service, orderSvc *order.Service) *DriverHandler {
	return &DriverHandler{drivers: driverSvc, order: orderSvc}
}

// ListOnline serves the customer-facing online driver list.
func (h *DriverHandler) ListOnline(c *gin.Context) {
	online, err := h.drivers.ListOnline(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	type view struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		WaNumber string `json:"wa_number"`
	}
	out := make([]view, 0, len(online))
	for _, d := range online {
		out = append(out, view{ID: string(d.ID), Name: d.Name, WaNumber: d.WaNumber})
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": out})
}

type driverOrderView struct {
	orderView
	CustomerName    string `json:"customer_name"`
	CustomerContact string `json:"customer_contact"`
}

// Orders returns the driver's work list split into active and history.
func (h *DriverHandler) Orders(c *gin.Context) {
	rec, err := h.record(c)
	if err != nil {
		return
	}
	active, history, err := h.order.ListByDriver(c.Request.Context(), rec.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"active":  viewDriverOrders(active),
		"history": viewDriverOrders(history),
	})
}

func viewDriverOrders(orders []order.DriverOrder) []driverOrderView {
	out := make([]driverOrderView, 0, len(orders))
	for i := range orders {
		out = append(out, driverOrderView{
			orderView:       viewOrder(&orders[i].Order),
			CustomerName:    orders[i].CustomerName,
			CustomerContact: orders[i].CustomerContact,
		})
	}
	return out
}

type availabilityReq struct {
	Status string `json:"status"`
}

func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var req availabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	rec, err := h.drivers.SetAvailability(c.Request.Context(), middleware.Caller(c).ID, driver.Availability(req.Status))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": rec.Status})
}

func (h *DriverHandler) Accept(c *gin.Context) {
	h.transition(c, func(orderID, driverID types.ID) error {
		return h.order.Accept(c.Request.Context(), order.AcceptCommand{OrderID: orderID, DriverID: driverID})
	})
}

func (h *DriverHandler) Start(c *gin.Context) {
	h.transition(c, func(orderID, driverID types.ID) error {
		return h.order.Start(c.Request.Context(), order.StartCommand{OrderID: orderID, DriverID: driverID})
	})
}

func (h *DriverHandler) Complete(c *gin.Context) {
	h.transition(c, func(orderID, driverID types.ID) error {
		return h.order.Complete(c.Request.Context(), order.CompleteCommand{OrderID: orderID, DriverID: driverID})
	})
}

func (h *DriverHandler) Cancel(c *gin.Context) {
	h.transition(c, func(orderID, driverID types.ID) error {
		return h.order.Cancel(c.Request.Context(), order.CancelCommand{OrderID: orderID, DriverID: driverID})
	})
}

func (h *DriverHandler) transition(c *gin.Context, do func(orderID, driverID types.ID) error) {
	rec, err := h.record(c)
	if err != nil {
		return
	}
	orderID := types.ID(c.Param("id"))
	if err := do(orderID, rec.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	o, err := h.order.Get(c.Request.Context(), orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOrder(o))
}

// record resolves the caller's driver record, creating it on first use. On
// failure it writes the response itself.
func (h *DriverHandler) record(c *gin.Context) (*driver.Record, error) {
	rec, err := h.drivers.EnsureRecord(c.Request.Context(), middleware.Caller(c).ID)
	if err != nil {
		writeServiceError(c, err)
		return nil, err
	}
	return rec, nil
}
