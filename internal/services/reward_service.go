package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"gorm.io/gorm"
)

// Redemption converts points to wallet credit at 1 point = 1 naira, with a
// floor to keep micro-redemptions out of the ledger.
const (
	MinRedeemPoints    int64 = 100
	ReviewRewardPoints int64 = 10
)

var (
	ErrRedeemBelowMinimum = fmt.Errorf("a minimum of %d points is required to redeem", MinRedeemPoints)
	ErrInsufficientPoints = errors.New("insufficient reward points")
)

type RewardService struct {
	db *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

// RedeemPoints converts points into wallet credit. The points guard is part
// of the UPDATE itself, so two concurrent redemptions cannot overdraw.
func (s *RewardService) RedeemPoints(userID uuid.UUID, points int64) error {
	if points < MinRedeemPoints {
		return ErrRedeemBelowMinimum
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND reward_points >= ?", userID, points).
			Updates(map[string]interface{}{
				"reward_points":  gorm.Expr("reward_points - ?", points),
				"wallet_balance": gorm.Expr("wallet_balance + ?", points),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		reference := helpers.NewPaymentReference("RWR")

		reward := models.RewardTransaction{
			UserID:      userID,
			Type:        models.RewardTxTypeRedeemed,
			Points:      points,
			Description: "Points redeemed for wallet credit",
			Reference:   reference,
		}
		if err := tx.Create(&reward).Error; err != nil {
			return err
		}

		walletTx := models.WalletTransaction{
			UserID:      userID,
			Type:        models.WalletTxTypeCredit,
			Amount:      points,
			Description: "Reward points redemption",
			Status:      models.WalletTxStatusCompleted,
			Reference:   reference,
		}
		return tx.Create(&walletTx).Error
	})
}

// AwardReviewPoints credits the fixed review bonus alongside its ledger row.
func (s *RewardService) AwardReviewPoints(userID, reviewID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		reward := models.RewardTransaction{
			UserID:      userID,
			Type:        models.RewardTxTypeEarned,
			Points:      ReviewRewardPoints,
			Description: "Reward for car review",
			Reference:   reviewID.String(),
		}
		if err := tx.Create(&reward).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("reward_points", gorm.Expr("reward_points + ?", ReviewRewardPoints)).Error
	})
}
