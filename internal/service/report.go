package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/repository"
)

type ReportService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewReportService(store repository.Store, logger *logrus.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

// CardReport summarises the spending on one card. The card and its history
// are read in one transaction so the totals match the card state.
func (s *ReportService) CardReport(ctx context.Context, cardID uuid.UUID) (*models.CardReport, error) {
	var report *models.CardReport
	err := s.store.InTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		card, err := ledger.NewCardManager(repos).Get(ctx, cardID)
		if err != nil {
			return err
		}
		spending, err := repos.Transactions().ListByCardAndDirection(ctx, cardID, models.DirectionOut)
		if err != nil {
			return fmt.Errorf("failed to list spending: %w", err)
		}
		report = ledger.SummarizeSpending(card, spending)
		return nil
	})
	if err != nil {
		logFailure(s.logger.WithField("card_id", cardID), err, "card report failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"card_id":   cardID,
		"spendings": report.NumberOfSpendings,
	}).Debug("card report built")
	return report, nil
}
