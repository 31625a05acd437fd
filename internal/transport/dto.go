package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Password               string `json:"password"`
	PhoneNumber            string `json:"phone_number"`
	Role                   string `json:"role"`
	RadaRegistrationNumber string `json:"rada_registration_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    uint            `json:"quantity"`
	ImageURL    string          `json:"image_url"`
}

// ProductListing is a product row joined with its farmer.
type ProductListing struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     uint            `json:"quantity"`
	ImageURL     string          `json:"image_url,omitempty"`
	FarmerName   string          `json:"farmer_name"`
	RadaVerified bool            `json:"rada_verified"`
}

type CreateOrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type CreateOrderRequest struct {
	PaymentMethod string            `json:"payment_method"`
	Items         []CreateOrderItem `json:"items"`
}

type CreateOrderResponse struct {
	OrderID     uint            `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
}

type CreateEventRequest struct {
	EventDate          time.Time `json:"event_date"`
	TaskDescription    string    `json:"task_description"`
	RequiredVolunteers uint      `json:"required_volunteers"`
}

// EventListing is an event row joined with its host.
type EventListing struct {
	EventID            uint      `json:"event_id"`
	EventDate          time.Time `json:"event_date"`
	TaskDescription    string    `json:"task_description"`
	RequiredVolunteers uint      `json:"required_volunteers"`
	HostFarmerName     string    `json:"host_farmer_name"`
}

type EventDetail struct {
	EventListing
	Volunteers []string `json:"volunteers"`
}

type AttendanceEntry struct {
	VolunteerID uint `json:"volunteer_id"`
	Attended    bool `json:"attended"`
}

type RecordAttendanceRequest struct {
	Volunteers []AttendanceEntry `json:"volunteers"`
}

type CreateProduceRequest struct {
	CropName         string    `json:"crop_name"`
	QuantityNeeded   uint      `json:"quantity_needed"`
	Specifications   string    `json:"specifications"`
	DesiredStartDate time.Time `json:"desired_start_date"`
}

// ProduceRequestListing is an open produce request joined with its buyer.
type ProduceRequestListing struct {
	ID               uint      `json:"id"`
	BuyerID          uint      `json:"buyer_id"`
	BuyerName        string    `json:"buyer_name"`
	CropName         string    `json:"crop_name"`
	QuantityNeeded   uint      `json:"quantity_needed"`
	Specifications   string    `json:"specifications"`
	DesiredStartDate time.Time `json:"desired_start_date"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateIDRequest struct {
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// IDRequestListing is an open identification request joined with the
// requesting farmer.
type IDRequestListing struct {
	ID          uint      `json:"id"`
	FarmerID    uint      `json:"farmer_id"`
	FarmerName  string    `json:"farmer_name"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type RespondIDRequest struct {
	Response string `json:"response"`
}

type DashboardResponse struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	NumberOfOrders   int64           `json:"number_of_orders"`
	RecentOrders     []RecentOrder   `json:"recent_orders"`
	EventsHosted     int64           `json:"events_hosted"`
	TimesVolunteered int64           `json:"times_volunteered"`
}

type RecentOrder struct {
	OrderID     uint            `json:"order_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}
