package services

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// GatewayConfig holds the merchant credentials for the payment
// gateway. Password1 signs outbound payment URLs, Password2 verifies
// inbound result callbacks.
type GatewayConfig struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
	Currency      string
}

type PaymentService interface {
	Initiate(payerID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
	HandleCallback(req *dto.PaymentCallbackRequest) error
	ListByPayer(payerID string, page, pageSize int) (*dto.PaymentListResponse, error)
	AdminList(page, pageSize int) (*dto.PaymentListResponse, error)
}

type PaymentServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	bookingRepo repositories.BookingRepository
	gateway     GatewayConfig
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	bookingRepo repositories.BookingRepository,
	gateway GatewayConfig,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
	}
}

// Initiate creates a pending transaction for a confirmed booking and
// returns the signed gateway redirect URL.
func (s *PaymentServiceImpl) Initiate(payerID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	booking, err := s.bookingRepo.FindByID(req.BookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if booking.OwnerID != payerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, apperrors.ErrInvalidStatus("payments", "Only confirmed bookings can be paid")
	}

	if booking.Amount <= 0 {
		return nil, apperrors.ErrInvalidOperation("payments", "Booking has no payable amount")
	}

	invID := uuid.NewString()

	tx := &models.PaymentTransaction{
		BookingID: booking.ID,
		PayerID:   payerID,
		Amount:    booking.Amount,
		Currency:  s.gateway.Currency,
		InvID:     invID,
		Status:    models.PaymentStatusPending,
	}

	if err := s.paymentRepo.Create(tx); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	paymentURL := s.buildPaymentURL(invID, booking.Amount)

	return &dto.InitiatePaymentResponse{
		PaymentURL: paymentURL,
		InvID:      invID,
	}, nil
}

// HandleCallback processes the gateway result notification. A bad
// signature rejects the callback without touching any state; a
// repeated callback for an already-paid invoice is a conflict, not a
// double credit.
func (s *PaymentServiceImpl) HandleCallback(req *dto.PaymentCallbackRequest) error {
	amount, err := strconv.ParseFloat(req.OutSum, 64)
	if err != nil {
		return apperrors.NewBadRequestError("invalid OutSum")
	}

	if !s.verifyResultSignature(amount, req.InvID, req.SignatureValue) {
		return apperrors.ErrBadPaymentSignature
	}

	tx, err := s.paymentRepo.FindByInvID(req.InvID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.UnavailableError(err)
	}

	if tx.Status != models.PaymentStatusPending {
		return apperrors.ErrPaymentAlreadyProcessed
	}

	payload, _ := json.Marshal(map[string]string{
		"OutSum":         req.OutSum,
		"InvId":          req.InvID,
		"SignatureValue": req.SignatureValue,
	})

	paidAt := time.Now()
	if err := s.paymentRepo.MarkPaid(req.InvID, paidAt, payload); err != nil {
		return apperrors.UnavailableError(err)
	}

	// Best effort: the transaction row is the billing record; the
	// booking marker is denormalized from it and a failure here must
	// not make the gateway retry an already-credited invoice.
	if err := s.bookingRepo.MarkPaid(tx.BookingID, paidAt); err != nil {
		logger.WithError(err).Warn("failed to mark booking as paid",
			"booking_id", tx.BookingID, "inv_id", req.InvID)
	}

	return nil
}

func (s *PaymentServiceImpl) ListByPayer(payerID string, page, pageSize int) (*dto.PaymentListResponse, error) {
	payments, total, err := s.paymentRepo.FindByPayer(payerID, page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	return &dto.PaymentListResponse{Payments: payments, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *PaymentServiceImpl) AdminList(page, pageSize int) (*dto.PaymentListResponse, error) {
	payments, total, err := s.paymentRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}
	return &dto.PaymentListResponse{Payments: payments, Total: total, Page: page, PageSize: pageSize}, nil
}

// buildPaymentURL assembles the merchant redirect with the Password1
// MD5 signature over login:amount:invid:password1.
func (s *PaymentServiceImpl) buildPaymentURL(invID string, amount float64) string {
	signature := s.signPayment(invID, amount)

	params := url.Values{}
	params.Set("MrchLogin", s.gateway.MerchantLogin)
	params.Set("OutSum", fmt.Sprintf("%.2f", amount))
	params.Set("InvId", invID)
	params.Set("SignatureValue", signature)
	params.Set("IncCurrLabel", s.gateway.Currency)

	return fmt.Sprintf("%s?%s", s.gateway.BaseURL, params.Encode())
}

func (s *PaymentServiceImpl) signPayment(invID string, amount float64) string {
	plain := fmt.Sprintf("%s:%.2f:%s:%s", s.gateway.MerchantLogin, amount, invID, s.gateway.Password1)
	hash := md5.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// verifyResultSignature checks the Password2 signature the gateway
// sends with result callbacks: amount:invid:password2.
func (s *PaymentServiceImpl) verifyResultSignature(amount float64, invID, receivedSig string) bool {
	plain := fmt.Sprintf("%.2f:%s:%s", amount, invID, s.gateway.Password2)
	hash := md5.Sum([]byte(plain))
	expectedSig := hex.EncodeToString(hash[:])
	return strings.EqualFold(expectedSig, receivedSig)
}
