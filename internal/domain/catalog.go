package domain

import "time"

// Brand represents a hardware vendor shown in the public catalog
type Brand struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	LogoURL     string    `json:"logo_url" db:"logo_url"`
	Website     string    `json:"website" db:"website"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Category represents a product category
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a product in the catalog. Brand and category
// references are optional.
type Product struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	Specifications StringList `json:"specifications" db:"specifications"`
	ImageURL       string     `json:"image_url" db:"image_url"`
	Price          float64    `json:"price" db:"price"`
	BrandID        *int64     `json:"brand_id" db:"brand_id"`
	CategoryID     *int64     `json:"category_id" db:"category_id"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	Featured       bool       `json:"featured" db:"featured"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Service represents a professional service offering
type Service struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Features    StringList `json:"features" db:"features"`
	Benefits    StringList `json:"benefits" db:"benefits"`
	Process     StringList `json:"process" db:"process"`
	Icon        string     `json:"icon" db:"icon"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	Featured    bool       `json:"featured" db:"featured"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Event represents a scheduled event such as a workshop or product launch
type Event struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Date        DateOnly   `json:"date" db:"date"`
	Time        string     `json:"time" db:"time"`
	Location    string     `json:"location" db:"location"`
	Capacity    int        `json:"capacity" db:"capacity"`
	Price       float64    `json:"price" db:"price"`
	EventType   string     `json:"event_type" db:"event_type"`
	Status      string     `json:"status" db:"status"`
	Agenda      StringList `json:"agenda" db:"agenda"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
