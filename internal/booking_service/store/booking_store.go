package store

import (
	"context"
	"fmt"

	"docuchat/internal/models"

	"gorm.io/gorm"
)

// BookingStore 负责预约记录的数据库读写。
type BookingStore struct {
	DB *gorm.DB
}

// NewBookingStore 创建一个新的 BookingStore。
func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{DB: db}
}

// CreateBooking 插入一条预约记录。
func (s *BookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := s.DB.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("创建预约记录失败: %w", err)
	}
	return nil
}

// ListBookings 按创建时间倒序返回所有预约记录。
func (s *BookingStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("查询预约记录失败: %w", err)
	}
	return bookings, nil
}
