package services

import (
	"context"
	"sync"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/store"
)

// VaultStatesQuery selects vault states. Empty fields do not filter.
type VaultStatesQuery struct {
	TransactionID string
	ContractClass string
	Unconsumed    bool
}

// FungibleStatesQuery selects fungible states. Empty fields do not filter.
type FungibleStatesQuery struct {
	TransactionID string
	Issuer        string
}

// Inspector serializes access to one store so it can serve concurrent
// callers; a store session must never run two statements at once.
type Inspector struct {
	store *store.Store
	mu    sync.Mutex
}

func NewInspectorService(st *store.Store) *Inspector {
	return &Inspector{store: st}
}

func (i *Inspector) Tables() []models.TableName {
	return models.Tables()
}

func (i *Inspector) Table(ctx context.Context, name string) (*models.RowSet, error) {
	table, err := models.ParseTableName(name)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Tables().Fetch(ctx, table)
}

func (i *Inspector) VaultStates(ctx context.Context, q VaultStatesQuery) (*models.RowSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var (
		rs  *models.RowSet
		err error
	)
	switch {
	case q.Unconsumed && q.ContractClass != "":
		rs, err = i.store.Vault().FindUnconsumedStatesByContractClass(ctx, q.ContractClass)
	case q.TransactionID != "":
		rs, err = i.store.Vault().FindVaultStatesByTransactionID(ctx, q.TransactionID)
	default:
		rs, err = i.store.Tables().Fetch(ctx, models.TableVaultStates)
	}
	if err != nil {
		return nil, err
	}

	if q.TransactionID != "" {
		rs = rs.Where(models.ColumnTransactionID, q.TransactionID)
	}
	if q.ContractClass != "" {
		rs = rs.Where(models.ColumnContractStateClassName, q.ContractClass)
	}
	if q.Unconsumed {
		rs = rs.IsNull(models.ColumnConsumedTimestamp)
	}
	return rs, nil
}

func (i *Inspector) FungibleStates(ctx context.Context, q FungibleStatesQuery) (*models.RowSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var (
		rs  *models.RowSet
		err error
	)
	switch {
	case q.TransactionID != "":
		rs, err = i.store.Vault().FindFungibleStatesByTransactionID(ctx, q.TransactionID)
	case q.Issuer != "":
		rs, err = i.store.Vault().FindFungibleStatesByIssuer(ctx, q.Issuer)
	default:
		rs, err = i.store.Tables().Fetch(ctx, models.TableVaultFungibleStates)
	}
	if err != nil {
		return nil, err
	}

	if q.Issuer != "" {
		rs = rs.Where(models.ColumnIssuerName, q.Issuer)
	}
	return rs, nil
}

func (i *Inspector) LinearStates(ctx context.Context, linearID string) (*models.RowSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Vault().FindByLinearID(ctx, linearID)
}

func (i *Inspector) LinearIDByTransaction(ctx context.Context, txID string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Vault().FindLinearIDByTransactionID(ctx, txID)
}

func (i *Inspector) StatesByLinearID(ctx context.Context, linearID string) (*models.RowSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Vault().FindStatesByLinearID(ctx, linearID)
}

func (i *Inspector) TransactionNotes(ctx context.Context, txID string) (*models.RowSet, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Vault().FindTransactionNotes(ctx, txID)
}
