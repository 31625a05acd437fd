package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleFarmer           = "Farmer"
	RoleBuyer            = "Buyer"
	RoleExtensionOfficer = "ExtensionOfficer"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"

	PaymentMethodDigital = "Digital"
)

const (
	RequestStatusOpen   = "Open"
	RequestStatusClosed = "Closed"
)

type User struct {
	ID                     uint   `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Name                   string `gorm:"not null"                 json:"name"`
	Email                  string `gorm:"unique;not null"          json:"email"`
	PasswordHash           string `gorm:"not null"                 json:"-"`
	PhoneNumber            string `json:"phone_number"`
	Role                   string `gorm:"not null"                 json:"role"`
	RadaRegistrationNumber string `json:"rada_registration_number,omitempty"`
	RadaVerified           bool   `gorm:"default:false"            json:"rada_verified"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"product_id"`
	FarmerID    uint            `gorm:"index;not null"              json:"farmer_id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    uint            `gorm:"not null"                    json:"quantity"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"    json:"order_id"`
	BuyerID       uint            `gorm:"index;not null"              json:"buyer_id"`
	OrderDate     time.Time       `gorm:"not null"                    json:"order_date"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"not null"                    json:"status"`
	PaymentMethod string          `gorm:"not null"                    json:"payment_method"`
}

type OrderItem struct {
	ID                uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           uint `gorm:"index;not null"           json:"order_id"`
	ProductID         uint `gorm:"not null"                 json:"product_id"`
	QuantityPurchased uint `gorm:"not null;check:quantity_purchased>0" json:"quantity_purchased"`
}

// Event is a Lend-Hand volunteer labor event hosted by a farmer.
type Event struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"event_id"`
	HostFarmerID       uint      `gorm:"index;not null"           json:"host_farmer_id"`
	EventDate          time.Time `gorm:"not null"                 json:"event_date"`
	TaskDescription    string    `gorm:"not null"                 json:"task_description"`
	RequiredVolunteers uint      `gorm:"not null;check:required_volunteers>0" json:"required_volunteers"`
}

// EventVolunteer is one RSVP. Attended stays nil until the host records
// attendance after the event.
type EventVolunteer struct {
	ID          uint  `gorm:"primaryKey;autoIncrement"                 json:"id"`
	EventID     uint  `gorm:"not null;uniqueIndex:idx_event_volunteer" json:"event_id"`
	VolunteerID uint  `gorm:"not null;uniqueIndex:idx_event_volunteer" json:"volunteer_id"`
	Attended    *bool `json:"attended"`
}

type ProduceRequest struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID          uint      `gorm:"index;not null"           json:"buyer_id"`
	CropName         string    `gorm:"not null"                 json:"crop_name"`
	QuantityNeeded   uint      `gorm:"not null"                 json:"quantity_needed"`
	Specifications   string    `json:"specifications"`
	DesiredStartDate time.Time `gorm:"not null"                 json:"desired_start_date"`
	Status           string    `gorm:"not null;default:Open"    json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type IDRequest struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FarmerID    uint       `gorm:"index;not null"           json:"farmer_id"`
	ImageURL    string     `gorm:"not null"                 json:"image_url"`
	Description string     `json:"description"`
	Status      string     `gorm:"not null;default:Open"    json:"status"`
	Response    string     `json:"response,omitempty"`
	OfficerID   *uint      `json:"officer_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
