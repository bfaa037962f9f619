package services

import (
	"context"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	"github.com/aurumworks/gold_ledger_app/internal/dto"
)

// PartySvcFacade covers customer/supplier sub-ledgers.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorID string) (*domain.Party, error)
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error)

	RecordTransaction(ctx context.Context, req dto.RecordPartyTransactionRequest, creatorID string) (*domain.PartyTransaction, error)
	ListTransactions(ctx context.Context, partyID string) ([]domain.PartyTransaction, error)
}

// SettingsSvcFacade reads and updates the finance-settings mapping.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.FinanceSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateFinanceSettingsRequest, actorID string) (*domain.FinanceSettings, error)
}

// AuditSvcFacade is the read-only audit surface: configuration completeness,
// linkage coverage, posting coverage and balance replay.
type AuditSvcFacade interface {
	RunChecks(ctx context.Context) (*dto.AuditReport, error)
	ReplayTreasury(ctx context.Context, treasuryID string) (*dto.TreasuryReplayResult, error)
	ReplayAccount(ctx context.Context, accountID string) (*dto.AccountReplayResult, error)
}

// NotificationSvcFacade lists and acknowledges in-app notifications.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}
