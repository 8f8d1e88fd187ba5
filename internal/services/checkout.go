package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// CheckoutContext carries everything one checkout needs, threaded through
// explicitly instead of being read from ambient session state.
//
// Token is a client-generated checkout token that keys the idempotent commit.
// A replayed token returns the already-placed order instead of creating a
// duplicate. When the client supplies none, a fresh token is generated and
// the call is only protected by the in-process single-flight guard.
type CheckoutContext struct {
	UserID          string
	DeliveryAddress string
	Token           string
}

// CheckoutResult is the outcome of a committed (or replayed) checkout.
type CheckoutResult struct {
	Order      domain.OrderRecord
	Assignment domain.ResolvedAssignment
	Replayed   bool
}

// CheckoutService converts a user's cart into a persisted order assigned to
// the nearest vendor, then clears the cart. Order creation and cart-line
// deletion happen in a single store transaction so the cart can neither
// duplicate nor lose its contents.
type CheckoutService struct {
	Geocoder        ports.Geocoder
	Vendors         ports.VendorRepository
	Cart            ports.CartRepository
	Orders          ports.OrderRepository
	SelectedVendors ports.SelectedVendorCache

	flight singleflight.Group
}

// Checkout resolves the nearest vendor for the delivery address and commits
// the order. Concurrent invocations for the same user (double-tap) collapse
// into one execution and share its result.
func (s *CheckoutService) Checkout(ctx context.Context, cc CheckoutContext) (CheckoutResult, error) {
	if cc.UserID == "" {
		return CheckoutResult{}, fmt.Errorf("checkout: user id must be non-empty: %w", domain.ErrValidation)
	}

	token := cc.Token
	if token == "" {
		token = uuid.NewString()
	}

	v, err, shared := s.flight.Do("checkout:"+cc.UserID, func() (any, error) {
		return s.checkout(ctx, cc.UserID, cc.DeliveryAddress, token)
	})
	if err != nil {
		return CheckoutResult{}, err
	}
	if shared {
		log.Printf("op=checkout user=%s shared_with_in_flight_call=true", cc.UserID)
	}

	return v.(CheckoutResult), nil
}

func (s *CheckoutService) checkout(ctx context.Context, userID, address, token string) (CheckoutResult, error) {
	lines, err := s.Cart.ListLines(ctx, userID)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: list cart lines: %w", err)
	}
	if len(lines) == 0 {
		return CheckoutResult{}, fmt.Errorf("checkout: cart is empty: %w", domain.ErrValidation)
	}

	res, err := ResolveNearestVendor(ctx, ResolveRequest{
		DeliveryAddress:    address,
		CandidateVendorIDs: domain.VendorIDs(lines),
	}, s.Geocoder, s.Vendors)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	order, err := domain.NewOrderRecord(
		uuid.NewString(), userID, token,
		res.Assignment, res.Delivery, lines,
		time.Now().UTC(),
	)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	lineIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		lineIDs = append(lineIDs, l.ID)
	}

	committed, err := s.Orders.CommitCheckout(ctx, order, lineIDs)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: commit order: %w", err)
	}

	result := CheckoutResult{Order: order, Assignment: res.Assignment}

	if !committed {
		// The token was already used; hand back the order it produced.
		existing, err := s.Orders.GetOrderByToken(ctx, token)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("checkout: load replayed order for token: %w", err)
		}
		if existing.UserID != userID {
			return CheckoutResult{}, fmt.Errorf("checkout: token belongs to another user's order: %w", domain.ErrCheckoutConflict)
		}
		result.Order = existing
		result.Replayed = true
	}

	if s.SelectedVendors != nil {
		if err := s.SelectedVendors.Set(ctx, userID, res.Assignment.Vendor.ID); err != nil {
			log.Printf("op=checkout user=%s selected_vendor_cache_write_failed err=%v", userID, err)
		}
	}

	log.Printf(
		"op=checkout user=%s order=%s vendor=%s distance_km=%.2f total=%.2f replayed=%t",
		userID, result.Order.ID, res.Assignment.Vendor.ID, res.Assignment.DistanceKm, result.Order.TotalAmount, result.Replayed,
	)

	return result, nil
}
