package plot

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/kubev2v/node-inspector/internal/models"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// TableFetcher reads a whole catalog table.
type TableFetcher interface {
	Fetch(ctx context.Context, table models.TableName) (*models.RowSet, error)
}

// Plotter draws the standard charts of a node.
type Plotter struct {
	tables TableFetcher
	opts   []Option
}

func NewPlotter(tables TableFetcher, opts ...Option) *Plotter {
	return &Plotter{tables: tables, opts: opts}
}

func (p *Plotter) NodeAttachments(ctx context.Context) (string, error) {
	values, err := p.column(ctx, models.TableNodeAttachments, models.ColumnInsertionDate)
	if err != nil {
		return "", err
	}
	return TimeSeries(values, "Node attachments time series", p.opts...)
}

func (p *Plotter) NodeMessageIDs(ctx context.Context) (string, error) {
	values, err := p.column(ctx, models.TableNodeMessageIDs, models.ColumnInsertionTime)
	if err != nil {
		return "", err
	}
	return TimeSeries(values, "Node message IDs time series", p.opts...)
}

// VaultStatesConsumed plots consumption times; unconsumed states are skipped.
func (p *Plotter) VaultStatesConsumed(ctx context.Context) (string, error) {
	values, err := p.column(ctx, models.TableVaultStates, models.ColumnConsumedTimestamp)
	if err != nil {
		return "", err
	}
	return TimeSeries(values, "Vault states consumed times", p.opts...)
}

func (p *Plotter) NodeCheckpointIDs(ctx context.Context) (string, error) {
	values, err := p.column(ctx, models.TableNodeCheckpoints, models.ColumnCheckpointID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, models.FormatValue(v))
	}
	return IDs(ids, "Checkpoint IDs"), nil
}

func (p *Plotter) VaultStatesStatus(ctx context.Context) (string, error) {
	values, err := p.column(ctx, models.TableVaultStates, models.ColumnStateStatus)
	if err != nil {
		return "", err
	}
	return StatusCounts(values, "Vault states status"), nil
}

func (p *Plotter) column(ctx context.Context, table models.TableName, column string) ([]any, error) {
	rs, err := p.tables.Fetch(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := rs.Column(column); !ok {
		return nil, srvErrors.NewQueryError(table.String(), errors.Newf("column %s not found", column))
	}

	values := make([]any, 0, rs.Len())
	for i := range rs.Rows {
		v, _ := rs.Get(i, column)
		values = append(values, v)
	}
	return values, nil
}
