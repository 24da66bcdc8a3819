package domain

import "time"

// User is the marketplace profile as served by the backend API.
type User struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// UserStatus mirrors the backend's account states.
type UserStatus string

const (
	StatusActive UserStatus = "active"
	StatusLocked UserStatus = "locked"
)

// Credentials represents login input.
type Credentials struct {
	Email    string
	Password string
}

// Registration represents sign-up input. PasswordConfirmation is checked
// locally before the request ever reaches the backend.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Phone                string
}

// AuthResult is the atomic token+profile pair returned by login and register.
// Both fields always come from the same backend response.
type AuthResult struct {
	Token string
	User  *User
}

// Session is the gateway-held record of a browser session. Token and User are
// replaced wholesale, never field by field. User may lag behind Token: after a
// rehydration the token is known before the profile has been re-fetched, and
// that window is a valid authenticated state.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Authenticated reports whether the session carries a bearer token,
// independent of whether the profile has been resolved yet.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// ProfilePending reports the authenticated-but-unresolved window.
func (s *Session) ProfilePending() bool {
	return s.Authenticated() && s.User == nil
}

// ResetPassword is the forgot-password completion input.
type ResetPassword struct {
	Email                string
	Token                string
	Password             string
	PasswordConfirmation string
}

// ChangePassword is the authenticated password-change input.
type ChangePassword struct {
	CurrentPassword      string
	Password             string
	PasswordConfirmation string
}

// Product is a study document listed on the marketplace.
type Product struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Thumbnail     string    `json:"thumbnail"`
	CategoryID    uint      `json:"category_id"`
	SellerID      uint      `json:"seller_id"`
	Status        string    `json:"status"`
	ViewsCount    int       `json:"views_count"`
	SalesCount    int       `json:"sales_count"`
	AverageRating float64   `json:"average_rating"`
	Category      *Category `json:"category,omitempty"`
	Seller        *User     `json:"seller,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Category groups products.
type Category struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	ParentID      uint      `json:"parent_id,omitempty"`
	ProductsCount int       `json:"products_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PageMeta is the backend's pagination envelope.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}
