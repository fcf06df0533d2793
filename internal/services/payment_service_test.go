package services

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	mu  sync.Mutex
	txs map[string]*models.PaymentTransaction // by InvID
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{txs: make(map[string]*models.PaymentTransaction)}
}

func (r *fakePaymentRepo) Create(tx *models.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tx
	r.txs[tx.InvID] = &copied
	return nil
}

func (r *fakePaymentRepo) FindByInvID(invID string) (*models.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[invID]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakePaymentRepo) MarkPaid(invID string, paidAt time.Time, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[invID]
	if !ok || tx.Status != models.PaymentStatusPending {
		return repositories.ErrPaymentNotFound
	}
	tx.Status = models.PaymentStatusPaid
	tx.PaidAt = &paidAt
	tx.Payload = payload
	return nil
}

func (r *fakePaymentRepo) MarkFailed(invID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[invID]
	if !ok || tx.Status != models.PaymentStatusPending {
		return repositories.ErrPaymentNotFound
	}
	tx.Status = models.PaymentStatusFailed
	return nil
}

func (r *fakePaymentRepo) FindByPayer(payerID string, page, pageSize int) ([]models.PaymentTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PaymentTransaction
	for _, tx := range r.txs {
		if tx.PayerID == payerID {
			out = append(out, *tx)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) FindAll(page, pageSize int) ([]models.PaymentTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PaymentTransaction
	for _, tx := range r.txs {
		out = append(out, *tx)
	}
	return out, int64(len(out)), nil
}

var testGateway = GatewayConfig{
	MerchantLogin: "agrihub",
	Password1:     "pw-one",
	Password2:     "pw-two",
	BaseURL:       "https://gateway.example/pay",
	Currency:      "KZT",
}

func newTestPaymentService(t *testing.T) (PaymentService, *fakePaymentRepo, *fakeBookingRepo) {
	t.Helper()
	paymentRepo := newFakePaymentRepo()
	bookingRepo := newFakeBookingRepo()
	svc := NewPaymentService(paymentRepo, bookingRepo, testGateway)
	return svc, paymentRepo, bookingRepo
}

func seedConfirmedBooking(t *testing.T, repo *fakeBookingRepo, id, ownerID string, amount float64) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Booking{
		BaseModel:  models.BaseModel{ID: id},
		ListingID:  "l1",
		OwnerID:    ownerID,
		ProviderID: "provider-1",
		Amount:     amount,
		Status:     models.BookingStatusConfirmed,
	}))
}

// resultSignature reproduces the gateway's callback signature:
// MD5 over amount:invid:password2.
func resultSignature(amount float64, invID, password2 string) string {
	hash := md5.Sum([]byte(fmt.Sprintf("%.2f:%s:%s", amount, invID, password2)))
	return hex.EncodeToString(hash[:])
}

func TestPaymentInitiate(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.InvID)

	assert.True(t, strings.HasPrefix(resp.PaymentURL, testGateway.BaseURL+"?"))
	assert.Contains(t, resp.PaymentURL, "MrchLogin=agrihub")
	assert.Contains(t, resp.PaymentURL, "OutSum=5000.00")
	assert.Contains(t, resp.PaymentURL, "InvId="+resp.InvID)
	assert.Contains(t, resp.PaymentURL, "SignatureValue=")

	tx, err := paymentRepo.FindByInvID(resp.InvID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, tx.Status)
	assert.Equal(t, float64(5000), tx.Amount)
}

func TestPaymentInitiate_Rejections(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	require.NoError(t, bookingRepo.Create(&models.Booking{
		BaseModel: models.BaseModel{ID: "bk-pending"},
		OwnerID:   "owner-1",
		Amount:    5000,
		Status:    models.BookingStatusPending,
	}))

	// Only the booking's owner pays.
	_, err := svc.Initiate("stranger", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	assert.Equal(t, apperrors.ErrInsufficientPermissions, err)

	// Only confirmed bookings are payable.
	_, err = svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-pending"})
	require.Error(t, err)

	_, err = svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "missing"})
	require.Error(t, err)
}

func TestPaymentCallback_Success(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(&dto.PaymentCallbackRequest{
		OutSum:         "5000.00",
		InvID:          resp.InvID,
		SignatureValue: resultSignature(5000, resp.InvID, testGateway.Password2),
	})
	require.NoError(t, err)

	tx, err := paymentRepo.FindByInvID(resp.InvID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, tx.Status)
	require.NotNil(t, tx.PaidAt)
	assert.NotEmpty(t, tx.Payload)

	booking, err := bookingRepo.FindByID("bk-1")
	require.NoError(t, err)
	require.NotNil(t, booking.PaidAt)
	assert.Equal(t, *tx.PaidAt, *booking.PaidAt)
}

// The signature comparison is case insensitive; gateways differ in
// casing of the hex digest.
func TestPaymentCallback_SignatureCasing(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)

	sig := strings.ToUpper(resultSignature(5000, resp.InvID, testGateway.Password2))
	err = svc.HandleCallback(&dto.PaymentCallbackRequest{
		OutSum:         "5000.00",
		InvID:          resp.InvID,
		SignatureValue: sig,
	})
	assert.NoError(t, err)
}

// A bad signature must reject the callback without touching state.
func TestPaymentCallback_BadSignature(t *testing.T) {
	t.Parallel()

	svc, paymentRepo, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(&dto.PaymentCallbackRequest{
		OutSum:         "5000.00",
		InvID:          resp.InvID,
		SignatureValue: "deadbeefdeadbeefdeadbeefdeadbeef",
	})
	assert.Equal(t, apperrors.ErrBadPaymentSignature, err)

	tx, err := paymentRepo.FindByInvID(resp.InvID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, tx.Status)
}

// A signature over a different amount must not verify against the
// callback's claimed amount.
func TestPaymentCallback_AmountMismatch(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(&dto.PaymentCallbackRequest{
		OutSum:         "1.00",
		InvID:          resp.InvID,
		SignatureValue: resultSignature(5000, resp.InvID, testGateway.Password2),
	})
	assert.Equal(t, apperrors.ErrBadPaymentSignature, err)
}

// Duplicate callbacks must not double-process a payment.
func TestPaymentCallback_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newTestPaymentService(t)
	seedConfirmedBooking(t, bookingRepo, "bk-1", "owner-1", 5000)

	resp, err := svc.Initiate("owner-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)

	callback := &dto.PaymentCallbackRequest{
		OutSum:         "5000.00",
		InvID:          resp.InvID,
		SignatureValue: resultSignature(5000, resp.InvID, testGateway.Password2),
	}

	require.NoError(t, svc.HandleCallback(callback))
	err = svc.HandleCallback(callback)
	assert.Equal(t, apperrors.ErrPaymentAlreadyProcessed, err)
}

func TestPaymentCallback_UnknownInvoice(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestPaymentService(t)

	err := svc.HandleCallback(&dto.PaymentCallbackRequest{
		OutSum:         "5000.00",
		InvID:          "no-such-invoice",
		SignatureValue: resultSignature(5000, "no-such-invoice", testGateway.Password2),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
