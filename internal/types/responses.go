package types

import "time"

type UserResponse struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

type HallResponse struct {
	ID              uint      `json:"id"`
	SalesmanID      *uint     `json:"salesman_id"`
	Length          float64   `json:"length"`
	Width           float64   `json:"width"`
	PoleHeight      float64   `json:"pole_height"`
	RoofSlope       int       `json:"roof_slope"`
	CalculatedValue *float64  `json:"calculated_value"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type MaterialResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MaterialUsageResponse struct {
	ID         uint      `json:"id"`
	HallID     uint      `json:"hall_id"`
	MaterialID *uint     `json:"material_id"`
	Quantity   int       `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}
