package api

import (
	"strings"
	"time"
)

// Status is a customer's lifecycle state in a vendor's queue.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusNotified  Status = "notified"
	StatusServed    Status = "served"
	StatusCancelled Status = "cancelled"
)

// Normalize lowercases and trims s.
func (s Status) Normalize() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// AssetStatus is the availability of a capacity unit.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetOccupied    AssetStatus = "occupied"
	AssetMaintenance AssetStatus = "maintenance"
	AssetReserved    AssetStatus = "reserved"
)

// AssetStatuses lists every asset status in display order.
var AssetStatuses = []AssetStatus{AssetAvailable, AssetOccupied, AssetMaintenance, AssetReserved}

// Vendor is a business operating a waitlist.
type Vendor struct {
	ID                 int64      `json:"id" toml:"id"`
	Email              string     `json:"email" toml:"email"`
	BusinessName       string     `json:"businessName" toml:"business_name"`
	ContactName        string     `json:"contactName" toml:"contact_name"`
	Phone              string     `json:"phone" toml:"phone"`
	SubscriptionStatus string     `json:"subscriptionStatus" toml:"subscription_status"`
	SubscriptionPlan   string     `json:"subscriptionPlan" toml:"subscription_plan"`
	CreatedAt          *time.Time `json:"createdAt,omitempty" toml:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" toml:"updated_at,omitempty"`
}

// Customer is a party waiting in a vendor's queue. Position and WaitTime are
// computed by the backend.
type Customer struct {
	ID         int64      `json:"id"`
	VendorID   int64      `json:"vendorId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	PartySize  int        `json:"partySize"`
	Position   int        `json:"position"`
	WaitTime   int        `json:"waitTime"`
	Status     Status     `json:"status"`
	JoinedAt   time.Time  `json:"joinedAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
	ServedAt   *time.Time `json:"servedAt,omitempty"`
	Preference string     `json:"preference,omitempty"`
}

// IsWaiting reports whether the customer is still in line.
func (c Customer) IsWaiting() bool {
	return c.Status.Normalize() == StatusWaiting
}

// Identifier returns the phone number, or the email when no phone is stored.
func (c Customer) Identifier() string {
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		return phone
	}
	return strings.TrimSpace(c.Email)
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// WaitlistMetrics summarises a vendor's queue.
type WaitlistMetrics struct {
	TotalCustomers       int      `json:"totalCustomers"`
	AverageWaitTime      float64  `json:"averageWaitTime"`
	CustomersServedToday int      `json:"customersServedToday"`
	CurrentWaitTime      float64  `json:"currentWaitTime"`
	PeakHours            []string `json:"peakHours"`
}

// Estimate is the backend's wait estimate for a queue position.
type Estimate struct {
	EstimatedMinutes int `json:"estimatedMinutes"`
}

// Asset is a capacity unit (table, room) owned by a vendor.
type Asset struct {
	ID          int64       `json:"id"`
	VendorID    int64       `json:"vendorId"`
	Name        string      `json:"name"`
	Capacity    int         `json:"capacity"`
	Type        string      `json:"type,omitempty"`
	Category    string      `json:"category,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      AssetStatus `json:"status"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty"`
}

// CapacitySummary aggregates asset capacity by status.
type CapacitySummary struct {
	TotalCapacity       int `json:"totalCapacity"`
	AvailableCapacity   int `json:"availableCapacity"`
	OccupiedCapacity    int `json:"occupiedCapacity"`
	MaintenanceCapacity int `json:"maintenanceCapacity"`
}

// JoinRequest is the payload for POST /waitlist/join.
type JoinRequest struct {
	FirstName  string `json:"firstName" label:"First name" validate:"required"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	PartySize  int    `json:"partySize" label:"Party size" validate:"min=1,max=20"`
	Preference string `json:"preference,omitempty"`
	VendorID   int64  `json:"vendorId" label:"Vendor" validate:"required"`
}

// SearchRequest is the payload for POST /waitlist/search.
type SearchRequest struct {
	Identifier string `json:"identifier"`
	VendorID   int64  `json:"vendorId"`
}

// LoginRequest carries vendor credentials.
type LoginRequest struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// RegisterRequest creates a vendor account.
type RegisterRequest struct {
	Email            string `json:"email" label:"Email" validate:"required,email"`
	Password         string `json:"password" label:"Password" validate:"required,min=6"`
	BusinessName     string `json:"businessName" label:"Business name" validate:"required"`
	ContactName      string `json:"contactName" label:"Contact name" validate:"required"`
	Phone            string `json:"phone" label:"Phone" validate:"required"`
	SubscriptionPlan string `json:"subscriptionPlan" label:"Subscription plan" validate:"required"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token  string `json:"token"`
	Vendor Vendor `json:"vendor"`
}

// AssetCreateRequest is the payload for POST /assets.
type AssetCreateRequest struct {
	Name        string      `json:"name"`
	Capacity    int         `json:"capacity" label:"Capacity" validate:"min=1"`
	Type        string      `json:"type,omitempty"`
	Category    string      `json:"category" label:"Category" validate:"required"`
	Description string      `json:"description,omitempty"`
	Status      AssetStatus `json:"status" label:"Status" validate:"oneof=available occupied maintenance reserved"`
	VendorID    int64       `json:"vendorId" label:"Vendor" validate:"required"`
}

// AssetUpdateRequest is the payload for PUT /assets/{id}. Nil fields are left unchanged.
type AssetUpdateRequest struct {
	Name        *string      `json:"name,omitempty"`
	Capacity    *int         `json:"capacity,omitempty" label:"Capacity" validate:"omitempty,min=1"`
	Type        *string      `json:"type,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *AssetStatus `json:"status,omitempty" label:"Status" validate:"omitempty,oneof=available occupied maintenance reserved"`
}

type statusUpdate struct {
	Status Status `json:"status"`
}
