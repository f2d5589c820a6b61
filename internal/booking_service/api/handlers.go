package api

import (
	"fmt"
	"net/http"
	"time"

	"docuchat/internal/booking_service/store"
	"docuchat/internal/models"
	"docuchat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handler 负责预约相关的 HTTP 接口。
type Handler struct {
	store *store.BookingStore
	log   *logger.Logger
}

// NewHandler 创建一个新的预约 Handler。
func NewHandler(s *store.BookingStore, log *logger.Logger) *Handler {
	return &Handler{store: s, log: log}
}

// CreateBookingRequest 是 POST /bookings 的请求体。
type CreateBookingRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
}

// BookingResponse 是单条预约记录的响应格式。
type BookingResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"created_at"`
}

func toResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Date:      b.Date,
		Time:      b.Time,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

// Create 直接创建一条预约记录，绕过对话式表单收集。
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, date and time are required"})
		return
	}

	booking := &models.Booking{
		Name:  req.Name,
		Email: req.Email,
		Date:  req.Date,
		Time:  req.Time,
	}
	if err := h.store.CreateBooking(c.Request.Context(), booking); err != nil {
		h.log.Error(fmt.Sprintf("Failed to create booking: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

// List 返回所有预约记录。
func (h *Handler) List(c *gin.Context) {
	bookings, err := h.store.ListBookings(c.Request.Context())
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to list bookings: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}
