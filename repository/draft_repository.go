package repository

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/gorm"
)

// DraftFilter selects drafts for a set of client accounts.
type DraftFilter struct {
	ClientIDs []uint
	Status    string
	Offset    int
	Limit     int
}

type DraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("draft_order_items.id ASC") }).
		Preload("Items.Product").
		Preload("Items.Product.Brand").
		Preload("Items.Product.Packaging")
}

// Create stores the draft and its items.
func (r *DraftRepository) Create(ctx context.Context, draft *models.DraftOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := draft.Items
		draft.Items = nil
		if err := tx.Create(draft).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].DraftOrderID = draft.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("Product").Create(&items).Error; err != nil {
				return err
			}
		}
		draft.Items = items
		return nil
	})
}

// FindForClients returns the draft if it belongs to one of clientIDs.
func (r *DraftRepository) FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.DraftOrder, error) {
	var draft models.DraftOrder
	err := r.withItems(ctx).Where("client_id IN ?", clientIDs).First(&draft, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &draft, nil
}

func (r *DraftRepository) List(ctx context.Context, f DraftFilter) ([]models.DraftOrder, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.DraftOrder{}).Where("client_id IN ?", f.ClientIDs)
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drafts []models.DraftOrder
	query := r.withItems(ctx).Where("client_id IN ?", f.ClientIDs)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	err := page(query, f.Offset, f.Limit).Order("created_at DESC").Find(&drafts).Error
	return drafts, total, err
}

// ReplaceItems overwrites the notes and items of a draft that is still in
// draft status.
func (r *DraftRepository) ReplaceItems(ctx context.Context, draft *models.DraftOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DraftOrder{}).
			Where("id = ? AND status = ?", draft.ID, models.DraftStatusDraft).
			Update("notes", draft.Notes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateChanged
		}

		if err := tx.Where("draft_order_id = ?", draft.ID).Delete(&models.DraftOrderItem{}).Error; err != nil {
			return err
		}
		for i := range draft.Items {
			draft.Items[i].ID = 0
			draft.Items[i].DraftOrderID = draft.ID
		}
		if len(draft.Items) > 0 {
			if err := tx.Omit("Product").Create(&draft.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkSubmitted moves a draft to submitted. It fails with ErrStateChanged
// if the draft was submitted or removed concurrently.
func (r *DraftRepository) MarkSubmitted(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.DraftOrder{}).
		Where("id = ? AND status = ?", id, models.DraftStatusDraft).
		Updates(map[string]interface{}{"status": models.DraftStatusSubmitted, "submitted_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateChanged
	}
	return nil
}

// Delete removes a draft in draft status together with its items.
func (r *DraftRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", id, models.DraftStatusDraft).Delete(&models.DraftOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateChanged
		}
		return tx.Where("draft_order_id = ?", id).Delete(&models.DraftOrderItem{}).Error
	})
}

// CountOpen counts drafts in draft or submitted status.
func (r *DraftRepository) CountOpen(ctx context.Context, clientIDs []uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.DraftOrder{}).
		Where("client_id IN ? AND status IN ?", clientIDs, []string{models.DraftStatusDraft, models.DraftStatusSubmitted}).
		Count(&n).Error
	return n, err
}

// ListSubmittedBetween returns submitted drafts of every client, oldest first.
func (r *DraftRepository) ListSubmittedBetween(ctx context.Context, from, to time.Time) ([]models.DraftOrder, error) {
	var drafts []models.DraftOrder
	err := r.withItems(ctx).Preload("Client").
		Where("status = ? AND submitted_at >= ? AND submitted_at < ?", models.DraftStatusSubmitted, from, to).
		Order("submitted_at ASC").
		Find(&drafts).Error
	return drafts, err
}
