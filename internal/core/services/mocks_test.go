package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/aurumworks/gold_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/gold_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/gold_ledger_app/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]domain.BalanceDelta, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, changes, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	args := m.Called(ctx, costCenter)
	return args.Error(0)
}

func (m *MockAccountRepository) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.LedgerLine, balanceChanges map[string]domain.BalanceDelta) error {
	args := m.Called(ctx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.LedgerLine), token, args.Error(2)
}

func (m *MockJournalRepository) ListEntryReferences(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) CountLines(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// --- Mock TreasuryRepository ---

type MockTreasuryRepository struct {
	mock.Mock
}

var _ portsrepo.TreasuryRepositoryWithTx = (*MockTreasuryRepository)(nil)

func (m *MockTreasuryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTreasuryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTreasuryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTreasuryRepository) SaveTreasury(ctx context.Context, treasury domain.Treasury) error {
	args := m.Called(ctx, treasury)
	return args.Error(0)
}

func (m *MockTreasuryRepository) FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	args := m.Called(ctx, treasuryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) FindTreasuryByCode(ctx context.Context, code string) (*domain.Treasury, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) FindTreasuryForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string) (*domain.Treasury, error) {
	args := m.Called(ctx, tx, treasuryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Treasury), args.Error(1)
}

func (m *MockTreasuryRepository) UpdateTreasuryBalancesInTx(ctx context.Context, tx pgx.Tx, treasury domain.Treasury, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, treasury, updatedBy, now)
	return args.Error(0)
}

func (m *MockTreasuryRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.TreasuryTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTreasuryRepository) ListTransactionsByTreasury(ctx context.Context, treasuryID string) ([]domain.TreasuryTransaction, error) {
	args := m.Called(ctx, treasuryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreasuryTransaction), args.Error(1)
}

func (m *MockTreasuryRepository) FindTransactionsByReference(ctx context.Context, referenceType, referenceID string) ([]domain.TreasuryTransaction, error) {
	args := m.Called(ctx, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreasuryTransaction), args.Error(1)
}

func (m *MockTreasuryRepository) SaveTransfer(ctx context.Context, transfer domain.TreasuryTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTreasuryRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.TreasuryTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryTransfer), args.Error(1)
}

func (m *MockTreasuryRepository) ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.TreasuryTransfer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.TreasuryTransfer), token, args.Error(2)
}

func (m *MockTreasuryRepository) NextTransferNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTreasuryRepository) MarkTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, transferID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockTreasuryRepository) MarkTransferCancelled(ctx context.Context, transferID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, transferID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock VoucherRepository ---

type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) SaveExpenseVoucher(ctx context.Context, voucher domain.ExpenseVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindExpenseVoucherByID(ctx context.Context, voucherID string) (*domain.ExpenseVoucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseVoucher), args.Error(1)
}

func (m *MockVoucherRepository) ListExpenseVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ExpenseVoucher, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.ExpenseVoucher), token, args.Error(2)
}

func (m *MockVoucherRepository) NextExpenseNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockVoucherRepository) MarkExpensePaidInTx(ctx context.Context, tx pgx.Tx, voucherID string, paidDate time.Time, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, voucherID, paidDate, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) SaveReceiptVoucher(ctx context.Context, voucher domain.ReceiptVoucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindReceiptVoucherByID(ctx context.Context, voucherID string) (*domain.ReceiptVoucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptVoucher), args.Error(1)
}

func (m *MockVoucherRepository) ListReceiptVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.ReceiptVoucher, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.ReceiptVoucher), token, args.Error(2)
}

func (m *MockVoucherRepository) NextReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockVoucherRepository) MarkReceiptConfirmedInTx(ctx context.Context, tx pgx.Tx, voucherID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, voucherID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

// --- Mock WorkshopRepository ---

type MockWorkshopRepository struct {
	mock.Mock
}

var _ portsrepo.WorkshopRepositoryWithTx = (*MockWorkshopRepository)(nil)

func (m *MockWorkshopRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockWorkshopRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWorkshopRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWorkshopRepository) SaveWorkshop(ctx context.Context, workshop domain.Workshop) error {
	args := m.Called(ctx, workshop)
	return args.Error(0)
}

func (m *MockWorkshopRepository) FindWorkshopByID(ctx context.Context, workshopID string) (*domain.Workshop, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) FindWorkshopForUpdate(ctx context.Context, tx pgx.Tx, workshopID string) (*domain.Workshop, error) {
	args := m.Called(ctx, tx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) UpdateWorkshopBalancesInTx(ctx context.Context, tx pgx.Tx, workshop domain.Workshop, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, workshop, updatedBy, now)
	return args.Error(0)
}

func (m *MockWorkshopRepository) SaveWorkshopTransfer(ctx context.Context, transfer domain.WorkshopTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockWorkshopRepository) NextWorkshopTransferNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockWorkshopRepository) SaveWorkshopTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.WorkshopTransfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockWorkshopRepository) FindWorkshopTransferByID(ctx context.Context, transferID string) (*domain.WorkshopTransfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkshopTransfer), args.Error(1)
}

func (m *MockWorkshopRepository) ListWorkshopTransfers(ctx context.Context, workshopID string) ([]domain.WorkshopTransfer, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkshopTransfer), args.Error(1)
}

func (m *MockWorkshopRepository) MarkWorkshopTransferCompletedInTx(ctx context.Context, tx pgx.Tx, transferID string, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, transferID, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkshopRepository) SaveSettlementInTx(ctx context.Context, tx pgx.Tx, settlement domain.WorkshopSettlement) error {
	args := m.Called(ctx, tx, settlement)
	return args.Error(0)
}

func (m *MockWorkshopRepository) ListSettlementsByWorkshop(ctx context.Context, workshopID string) ([]domain.WorkshopSettlement, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkshopSettlement), args.Error(1)
}

// --- Mock ManufacturingRepository ---

type MockManufacturingRepository struct {
	mock.Mock
}

var _ portsrepo.ManufacturingRepositoryWithTx = (*MockManufacturingRepository)(nil)

func (m *MockManufacturingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockManufacturingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockManufacturingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockManufacturingRepository) SaveOrder(ctx context.Context, order domain.ManufacturingOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockManufacturingRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockManufacturingRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.ManufacturingOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingOrder), args.Error(1)
}

func (m *MockManufacturingRepository) ListOrders(ctx context.Context, limit int, nextToken *string) ([]domain.ManufacturingOrder, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.ManufacturingOrder), token, args.Error(2)
}

func (m *MockManufacturingRepository) UpdateOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string, fromStatuses []domain.OrderStatus, toStatus domain.OrderStatus, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, orderID, fromStatuses, toStatus, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockManufacturingRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order domain.ManufacturingOrder) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockManufacturingRepository) SaveStageInTx(ctx context.Context, tx pgx.Tx, stage domain.ProductionStage) error {
	args := m.Called(ctx, tx, stage)
	return args.Error(0)
}

func (m *MockManufacturingRepository) ListStagesByOrder(ctx context.Context, orderID string) ([]domain.ProductionStage, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductionStage), args.Error(1)
}

func (m *MockManufacturingRepository) SaveOrderStone(ctx context.Context, stone domain.OrderStone) error {
	args := m.Called(ctx, stone)
	return args.Error(0)
}

func (m *MockManufacturingRepository) ListOrderStones(ctx context.Context, orderID string) ([]domain.OrderStone, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderStone), args.Error(1)
}

func (m *MockManufacturingRepository) UpdateOrderStoneWeight(ctx context.Context, orderID string, totalStoneWeight decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, orderID, totalStoneWeight, updatedBy, now)
	return args.Error(0)
}

func (m *MockManufacturingRepository) FindRawMaterialForUpdate(ctx context.Context, tx pgx.Tx, materialID string) (*domain.RawMaterial, error) {
	args := m.Called(ctx, tx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawMaterial), args.Error(1)
}

func (m *MockManufacturingRepository) UpdateRawMaterialWeightInTx(ctx context.Context, tx pgx.Tx, materialID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, materialID, newWeight, updatedBy, now)
	return args.Error(0)
}

func (m *MockManufacturingRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockManufacturingRepository) FindToolStockForUpdate(ctx context.Context, tx pgx.Tx, treasuryID string, karat domain.Karat) (*domain.GoldToolStock, error) {
	args := m.Called(ctx, tx, treasuryID, karat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoldToolStock), args.Error(1)
}

func (m *MockManufacturingRepository) UpdateToolStockWeightInTx(ctx context.Context, tx pgx.Tx, stockID string, newWeight decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, stockID, newWeight, updatedBy, now)
	return args.Error(0)
}

// --- Mock PartyRepository ---

type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryWithTx = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockPartyRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPartyRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindPartyForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, tx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.PartyTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockPartyRepository) ListTransactionsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.PartyTransaction, error) {
	args := m.Called(ctx, tx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyTransaction), args.Error(1)
}

func (m *MockPartyRepository) UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, party domain.Party, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, party, updatedBy, now)
	return args.Error(0)
}

func (m *MockPartyRepository) ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PartyTransaction, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyTransaction), args.Error(1)
}

// --- Mock SettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) GetFinanceSettings(ctx context.Context) (*domain.FinanceSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveFinanceSettings(ctx context.Context, settings domain.FinanceSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

// --- Mock PostingService (as consumed by the lifecycle services) ---

type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostTreasuryTransaction(ctx context.Context, txn domain.TreasuryTransaction, transfer *domain.TreasuryTransfer) (*domain.JournalEntry, error) {
	args := m.Called(ctx, txn, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostInvoice(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, invoice, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostCommission(ctx context.Context, invoice domain.SalesInvoice, creatorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, invoice, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
