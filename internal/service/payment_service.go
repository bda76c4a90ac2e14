package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"go.uber.org/zap"

	"parkwise/internal/cache"
	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
	"parkwise/internal/repository"
)

// PaymentService records payments against reservations. It never processes
// money itself: card transactions are optionally verified against Stripe,
// everything else is recorded as reported.
type PaymentService struct {
	payments         repository.PaymentRepository
	invalidator      *cache.Invalidator
	logger           *zap.Logger
	verifyWithStripe bool
}

func NewPaymentService(payments repository.PaymentRepository, invalidator *cache.Invalidator, logger *zap.Logger, verifyWithStripe bool) *PaymentService {
	return &PaymentService{
		payments:         payments,
		invalidator:      invalidator,
		logger:           logger,
		verifyWithStripe: verifyWithStripe,
	}
}

// Record persists a payment for a reservation and invalidates the owning
// user's dashboard. Returns errors.ErrNotFound for an unknown reservation
// and errors.ErrConflict when the reservation is already paid.
func (s *PaymentService) Record(ctx context.Context, req entities.PaymentRequest) (*db.Payment, error) {
	if req.ReservationID == 0 || req.Amount <= 0 || req.Method == "" || req.Status == "" {
		return nil, errors.NewHTTPError(http.StatusBadRequest, "missing required payment fields")
	}

	ownerID, err := s.payments.ReservationOwner(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if req.Method == "card" && s.verifyWithStripe {
		if err := s.verifyCardPayment(req); err != nil {
			return nil, err
		}
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	payment := &db.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        req.Status,
		TransactionID: transactionID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.OpRecordPayment, cache.Scope{UserID: ownerID})
	s.logger.Info("payment recorded",
		zap.Int("payment_id", payment.ID),
		zap.Int("reservation_id", req.ReservationID),
		zap.String("method", req.Method))
	return payment, nil
}

// verifyCardPayment checks the reported transaction against Stripe. The
// transaction id must be a PaymentIntent id in a succeeded state.
func (s *PaymentService) verifyCardPayment(req entities.PaymentRequest) error {
	if req.TransactionID == "" {
		return errors.NewHTTPError(http.StatusBadRequest, "card payments require a transaction id")
	}
	pi, err := paymentintent.Get(req.TransactionID, nil)
	if err != nil {
		return fmt.Errorf("verify payment intent %s: %w", req.TransactionID, err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return errors.NewHTTPError(http.StatusPaymentRequired,
			fmt.Sprintf("payment intent is %s, expected succeeded", pi.Status))
	}
	return nil
}
