package repository

import (
	"context"
	"time"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.PaymentRecord, error) {
	var p domain.PaymentRecord
	if err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaidIdempotent flips the record to paid exactly once. Returns false
// without touching the row when it is already paid (replayed webhook). The
// conditional update keeps two concurrent deliveries from both applying.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, intentID, rawBody string, paidAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.PaymentRecord{}).
		Where("intent_id = ? AND status <> ?", intentID, domain.PaymentRecordPaid).
		Updates(map[string]interface{}{
			"status":   domain.PaymentRecordPaid,
			"raw_body": rawBody,
			"paid_at":  paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Distinguish a replay from an intent we never recorded.
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.PaymentRecord{}).Where("intent_id = ?", intentID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return false, nil
}

// MarkFailed records a failed outcome unless the record already went paid.
func (r *PaymentRepository) MarkFailed(ctx context.Context, intentID, rawBody string) error {
	return r.db.WithContext(ctx).
		Model(&domain.PaymentRecord{}).
		Where("intent_id = ? AND status <> ?", intentID, domain.PaymentRecordPaid).
		Updates(map[string]interface{}{
			"status":   domain.PaymentRecordFailed,
			"raw_body": rawBody,
		}).Error
}
