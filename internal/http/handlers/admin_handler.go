// README: Admin handlers: overview, listings, role changes, CSV export.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"omaga/internal/modules/admin"
	"omaga/internal/modules/report"
	"omaga/internal/types"
)

type AdminHandler struct {
	admin   *admin.Service
	reports *report.Service
}

func NewAdminHandler(adminSvc *admin.Service, reportSvc *report.Service) *AdminHandler {
	return &AdminHandler{admin: adminSvc, reports: reportSvc}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	st, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"total_users":      st.TotalUsers,
		"total_drivers":    st.TotalDrivers,
		"active_drivers":   st.ActiveDrivers,
		"total_orders":     st.TotalOrders,
		"completed_orders": st.CompletedOrders,
		"pending_orders":   st.PendingOrders,
	})
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	type view struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		WaNumber  string    `json:"wa_number"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]view, 0, len(users))
	for _, u := range users {
		out = append(out, view{
			ID: string(u.ID), Email: u.Email, Name: u.Name,
			WaNumber: u.WaNumber, Role: string(u.Role), CreatedAt: u.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"users": out})
}

func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrderSummaries(orders)})
}

// DriverOrders lists one driver's orders, addressed by the driver's user id.
func (h *AdminHandler) DriverOrders(c *gin.Context) {
	orders, err := h.admin.ListDriverOrders(c.Request.Context(), types.ID(c.Param("user_id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"orders": viewOrderSummaries(orders)})
}

type orderSummaryView struct {
	ID           string     `json:"id"`
	Kind         string     `json:"type"`
	PickupAddr   string     `json:"pickup_addr"`
	DestAddr     string     `json:"dest_addr"`
	Status       string     `json:"status"`
	CustomerName string     `json:"customer_name"`
	DriverName   *string    `json:"driver_name"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func viewOrderSummaries(orders []admin.OrderSummary) []orderSummaryView {
	out := make([]orderSummaryView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderSummaryView{
			ID: string(o.ID), Kind: o.Kind, PickupAddr: o.PickupAddr, DestAddr: o.DestAddr,
			Status: o.Status, CustomerName: o.CustomerName, DriverName: o.DriverName,
			CreatedAt: o.CreatedAt, CompletedAt: o.CompletedAt,
		})
	}
	return out
}

func (h *AdminHandler) ExportUsers(c *gin.Context) {
	data, err := h.admin.ExportUsersCSV(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *AdminHandler) Promote(c *gin.Context) {
	if err := h.admin.Promote(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "promoted"})
}

func (h *AdminHandler) Demote(c *gin.Context) {
	if err := h.admin.Demote(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "demoted"})
}

func (h *AdminHandler) Reports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	type view struct {
		ID           string    `json:"id"`
		OrderID      string    `json:"order_id"`
		Message      string    `json:"message"`
		IsAnonymous  bool      `json:"is_anonymous"`
		Resolved     bool      `json:"resolved"`
		ReporterName *string   `json:"reporter_name"`
		PickupAddr   string    `json:"pickup_addr"`
		DestAddr     string    `json:"dest_addr"`
		CreatedAt    time.Time `json:"created_at"`
	}
	out := make([]view, 0, len(reports))
	for _, r := range reports {
		out = append(out, view{
			ID: string(r.ID), OrderID: string(r.OrderID), Message: r.Message,
			IsAnonymous: r.IsAnonymous, Resolved: r.Resolved, ReporterName: r.ReporterName,
			PickupAddr: r.PickupAddr, DestAddr: r.DestAddr, CreatedAt: r.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"reports": out})
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	if err := h.reports.Resolve(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "resolved"})
}
