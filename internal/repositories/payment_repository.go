package repositories

import (
	"errors"
	"time"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment transaction not found")
)

type PaymentRepository interface {
	Create(tx *models.PaymentTransaction) error
	FindByInvID(invID string) (*models.PaymentTransaction, error)
	MarkPaid(invID string, paidAt time.Time, payload []byte) error
	MarkFailed(invID string) error
	FindByPayer(payerID string, page, pageSize int) ([]models.PaymentTransaction, int64, error)
	FindAll(page, pageSize int) ([]models.PaymentTransaction, int64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) Create(tx *models.PaymentTransaction) error {
	return r.db.Create(tx).Error
}

func (r *PaymentRepositoryImpl) FindByInvID(invID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.First(&tx, "inv_id = ?", invID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// MarkPaid transitions pending -> paid. The status guard in the WHERE
// clause makes duplicate gateway callbacks no-ops.
func (r *PaymentRepositoryImpl) MarkPaid(invID string, paidAt time.Time, payload []byte) error {
	result := r.db.Model(&models.PaymentTransaction{}).
		Where("inv_id = ? AND status = ?", invID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":  models.PaymentStatusPaid,
			"paid_at": paidAt,
			"payload": payload,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkFailed(invID string) error {
	result := r.db.Model(&models.PaymentTransaction{}).
		Where("inv_id = ? AND status = ?", invID, models.PaymentStatusPending).
		Update("status", models.PaymentStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByPayer(payerID string, page, pageSize int) ([]models.PaymentTransaction, int64, error) {
	return r.list(r.db.Model(&models.PaymentTransaction{}).Where("payer_id = ?", payerID), page, pageSize)
}

func (r *PaymentRepositoryImpl) FindAll(page, pageSize int) ([]models.PaymentTransaction, int64, error) {
	return r.list(r.db.Model(&models.PaymentTransaction{}), page, pageSize)
}

func (r *PaymentRepositoryImpl) list(query *gorm.DB, page, pageSize int) ([]models.PaymentTransaction, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var txs []models.PaymentTransaction
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
