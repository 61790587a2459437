package models

// GuestRequest is the payload accepted by create and update.
type GuestRequest struct {
	FirstName   string `json:"firstName" validate:"notblank,max=100"`
	LastName    string `json:"lastName" validate:"notblank,max=100"`
	Email       string `json:"email" validate:"notblank,email,max=150"`
	Phone       string `json:"phone" validate:"notblank,max=20"`
	Address     string `json:"address" validate:"max=255"`
	IDNumber    string `json:"idNumber" validate:"max=255"`
	Preferences string `json:"preferences"`
}

// ApplyTo overwrites the editable fields of g. Loyalty points, stay history
// and the deletion flag are left alone.
func (r GuestRequest) ApplyTo(g *Guest) {
	g.FirstName = r.FirstName
	g.LastName = r.LastName
	g.Email = r.Email
	g.Phone = r.Phone
	g.Address = r.Address
	g.IDNumber = r.IDNumber
	g.Preferences = r.Preferences
}

// GuestResponse is the view of a guest returned by the API.
type GuestResponse struct {
	ID            uint   `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Preferences   string `json:"preferences"`
	StayHistory   string `json:"stayHistory"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
