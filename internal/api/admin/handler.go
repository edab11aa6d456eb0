package admin

import (
	"net/http"
	"strconv"
	"time"

	"gallery-app/database"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/orders"
	"gallery-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int64            `json:"total_users"`
	TotalOrders     int64            `json:"total_orders"`
	TotalRevenue    float64          `json:"total_revenue"`
	RecentRevenue   float64          `json:"recent_revenue"`
	OrdersPerStatus map[string]int64 `json:"orders_per_status"`
}

// GET /admin/dashboard
func Dashboard(c *gin.Context) {
	var stats AdminStats

	if err := database.DB.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := database.DB.Model(&orders.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	type statusCount struct {
		PaymentStatus string
		N             int64
	}
	var counts []statusCount
	if err := database.DB.Model(&orders.Order{}).
		Select("payment_status, COUNT(*) AS n").
		Group("payment_status").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	stats.OrdersPerStatus = make(map[string]int64, len(counts))
	for _, sc := range counts {
		stats.OrdersPerStatus[sc.PaymentStatus] = sc.N
	}

	completed := database.DB.Model(&orders.Order{}).Where("payment_status = ?", orders.PaymentCompleted)
	if err := completed.Select("COALESCE(SUM(amount_usd), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := database.DB.Model(&orders.Order{}).
		Where("payment_status = ? AND created_at > ?", orders.PaymentCompleted, time.Now().AddDate(0, 0, -30)).
		Select("COALESCE(SUM(amount_usd), 0)").
		Scan(&stats.RecentRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:        u.ID,
			Name:      u.Name,
			Lastname:  u.Lastname,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/orders
func ListAllOrders(c *gin.Context) {
	var all []orders.Order
	q := database.DB.Preload("Artwork").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if err := q.Limit(500).Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GET /admin/audit
func ListAuditEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := audit.ListRecent(database.DB, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit events"})
		return
	}
	c.JSON(http.StatusOK, events)
}
