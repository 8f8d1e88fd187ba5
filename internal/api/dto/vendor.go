package dto

type VendorResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Address     string   `json:"address,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

type ListVendorsResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

type SelectedVendorResponse struct {
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id,omitempty"`
}
