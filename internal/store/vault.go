package store

import (
	"context"

	"github.com/kubev2v/node-inspector/internal/models"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// VaultStore answers lookups over the vault tables. Each lookup scans its
// tables through TableStore and filters in memory; matches are exact.
type VaultStore struct {
	tables *TableStore
}

func NewVaultStore(tables *TableStore) *VaultStore {
	return &VaultStore{tables: tables}
}

// FindByLinearID returns the linear states whose linear id is id.
func (s *VaultStore) FindByLinearID(ctx context.Context, id string) (*models.RowSet, error) {
	return s.where(ctx, models.TableVaultLinearStates, models.ColumnLinearID, id)
}

// FindVaultStatesByTransactionID returns the vault states produced by txID.
func (s *VaultStore) FindVaultStatesByTransactionID(ctx context.Context, txID string) (*models.RowSet, error) {
	return s.where(ctx, models.TableVaultStates, models.ColumnTransactionID, txID)
}

// FindFungibleStatesByTransactionID returns the fungible states produced by txID.
func (s *VaultStore) FindFungibleStatesByTransactionID(ctx context.Context, txID string) (*models.RowSet, error) {
	return s.where(ctx, models.TableVaultFungibleStates, models.ColumnTransactionID, txID)
}

// FindFungibleStatesByIssuer returns the fungible states issued by issuer.
func (s *VaultStore) FindFungibleStatesByIssuer(ctx context.Context, issuer string) (*models.RowSet, error) {
	return s.where(ctx, models.TableVaultFungibleStates, models.ColumnIssuerName, issuer)
}

// FindUnconsumedStatesByContractClass returns the vault states of contract
// class className that have not been consumed.
func (s *VaultStore) FindUnconsumedStatesByContractClass(ctx context.Context, className string) (*models.RowSet, error) {
	rs, err := s.tables.Fetch(ctx, models.TableVaultStates)
	if err != nil {
		return nil, err
	}
	return rs.IsNull(models.ColumnConsumedTimestamp).Where(models.ColumnContractStateClassName, className), nil
}

// FindLinearIDByTransactionID returns the linear id of the first linear state
// produced by txID. It fails with NotFoundError when there is none.
func (s *VaultStore) FindLinearIDByTransactionID(ctx context.Context, txID string) (string, error) {
	rs, err := s.where(ctx, models.TableVaultLinearStates, models.ColumnTransactionID, txID)
	if err != nil {
		return "", err
	}
	if rs.Empty() {
		return "", srvErrors.NewNotFoundError("linear state for transaction", txID)
	}
	id, _ := rs.Get(0, models.ColumnLinearID)
	if id == nil {
		return "", srvErrors.NewNotFoundError("linear id for transaction", txID)
	}
	return models.FormatValue(id), nil
}

// FindStatesByLinearID joins the linear states carrying id with their vault
// state rows.
func (s *VaultStore) FindStatesByLinearID(ctx context.Context, id string) (*models.RowSet, error) {
	linear, err := s.FindByLinearID(ctx, id)
	if err != nil {
		return nil, err
	}
	states, err := s.tables.Fetch(ctx, models.TableVaultStates)
	if err != nil {
		return nil, err
	}

	joined, err := linear.Join(states, models.ColumnTransactionID, models.ColumnOutputIndex)
	if err != nil {
		return nil, srvErrors.NewQueryError(models.TableVaultStates.String(), err)
	}
	return joined, nil
}

// FindTransactionNotes returns the notes attached to txID.
func (s *VaultStore) FindTransactionNotes(ctx context.Context, txID string) (*models.RowSet, error) {
	return s.where(ctx, models.TableVaultTransactionNotes, models.ColumnTransactionID, txID)
}

func (s *VaultStore) where(ctx context.Context, table models.TableName, column string, value any) (*models.RowSet, error) {
	rs, err := s.tables.Fetch(ctx, table)
	if err != nil {
		return nil, err
	}
	return rs.Where(column, value), nil
}
