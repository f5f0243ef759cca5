package domain

// BookingDetails carries the customer information collected before a
// checkout can be validated. Every field is required.
type BookingDetails struct {
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	BookingDate  string `json:"booking_date"`
	BookingTime  string `json:"booking_time"`
}

// MissingFields names the fields that are still empty.
func (d BookingDetails) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"customer_name", d.CustomerName},
		{"mobile_number", d.MobileNumber},
		{"email", d.Email},
		{"address", d.Address},
		{"booking_date", d.BookingDate},
		{"booking_time", d.BookingTime},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (d BookingDetails) Complete() bool {
	return len(d.MissingFields()) == 0
}
