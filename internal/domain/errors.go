package domain

// Failure taxonomy for nearest-vendor resolution and checkout. Each value is
// terminal for the call that returns it; the caller surfaces a distinct
// user-facing message and the user retries manually.
var (
	// ErrInvalidAddress: empty or blank delivery address, detected before
	// any network call.
	ErrInvalidAddress = checkoutError("delivery address is empty")

	// ErrAddressUnresolvable: geocoding the delivery address failed or
	// returned no usable result.
	ErrAddressUnresolvable = checkoutError("delivery address could not be resolved to a location")

	// ErrNoVendors: the candidate vendor fetch returned zero records.
	ErrNoVendors = checkoutError("no vendors available")

	// ErrNoResolvableVendor: every candidate vendor lacked a usable location.
	ErrNoResolvableVendor = checkoutError("no vendor location could be determined")

	// ErrNoGeocodeResult: the geocoding provider had no match for an address.
	ErrNoGeocodeResult = checkoutError("no geocode result")

	// ErrCheckoutConflict: a different order already exists for the checkout token.
	ErrCheckoutConflict = checkoutError("checkout already committed with a different token state")

	ErrNotFound          = checkoutError("not found")
	ErrValidation        = checkoutError("invalid data")
	ErrInvalidTransition = checkoutError("order status transition not allowed")
)

type checkoutError string

func (e checkoutError) Error() string { return string(e) }
