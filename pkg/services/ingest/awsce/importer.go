package awsce

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/fin-tools/tco-atlas/pkg/models/store"
	"github.com/fin-tools/tco-atlas/pkg/store/duckdb"
	coststore "github.com/fin-tools/tco-atlas/pkg/store/duckdb/cost"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CostExplorerAPI is the slice of the Cost Explorer client the importer uses.
type CostExplorerAPI interface {
	GetCostAndUsage(
		ctx context.Context,
		input *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
}

// Importer pulls monthly unblended spend per AWS service and records each
// (month, service) total as a one-time cost on the product. Re-runs are
// deduplicated via the external reference key, so importing the same window
// twice is a no-op.
type Importer struct {
	client CostExplorerAPI
	db     *sql.DB
	costs  coststore.Store
	now    func() time.Time
}

func NewImporter(client CostExplorerAPI, db *sql.DB, costs coststore.Store) *Importer {
	return &Importer{
		client: client,
		db:     db,
		costs:  costs,
		now:    time.Now,
	}
}

// ImportMonthlyCosts imports the last `months` full calendar months of spend
// for a product and returns the number of new cost records created. The window
// is snapped to month boundaries and excludes the current month, so every
// imported bucket is a closed month; a partial month-to-date total would be
// frozen by the dedup key and never corrected.
func (i *Importer) ImportMonthlyCosts(ctx context.Context, productID string, months int) (int, error) {
	logger := zerolog.Ctx(ctx)

	today := i.now().UTC()
	end := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -months, 0)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			Not: &types.Expression{
				Dimensions: &types.DimensionValues{
					Key:    types.DimensionRecordType,
					Values: []string{"Credit", "Refund"},
				},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
		},
	}

	result, err := i.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to get cost and usage: %w", err)
	}

	existing, err := i.costs.ListExternalRefs(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to list imported references: %w", err)
	}

	records, err := mapResultToCostRecords(result, productID, existing)
	if err != nil {
		return 0, err
	}

	// The batch lands atomically: a mid-batch failure must not leave a subset
	// of the window's records behind dedup keys.
	if len(records) > 0 {
		tx, err := i.db.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to begin import transaction: %w", err)
		}
		if err := i.costs.Add(duckdb.WithTransaction(ctx, tx), records); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to store imported costs: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("failed to commit imported costs: %w", err)
		}
	}

	logger.Info().
		Str("product", productID).
		Int("imported", len(records)).
		Int("skipped", countGroups(result)-len(records)).
		Msg("aws cost explorer import finished")

	return len(records), nil
}

func mapResultToCostRecords(
	result *costexplorer.GetCostAndUsageOutput,
	productID string,
	existing map[string]struct{},
) ([]store.CostRecord, error) {
	var records []store.CostRecord

	for _, resultByTime := range result.ResultsByTime {
		if resultByTime.TimePeriod == nil || resultByTime.TimePeriod.Start == nil {
			continue
		}
		month := *resultByTime.TimePeriod.Start

		for _, group := range resultByTime.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			service := group.Keys[0]

			ref := externalRef(service, month)
			if _, seen := existing[ref]; seen {
				continue
			}

			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}
			amount, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse amount for %s %s: %w", service, month, err)
			}

			currency := ""
			if metric.Unit != nil {
				currency = *metric.Unit
			}

			records = append(records, store.CostRecord{
				ID:          uuid.NewString(),
				ProductID:   productID,
				Name:        fmt.Sprintf("%s (%s)", service, month),
				Scope:       domain.ScopeShared,
				Category:    domain.CategoryRun,
				CostType:    domain.CostTypeInfra,
				Recurrence:  domain.RecurrenceOneTime,
				Amount:      amount,
				Currency:    currency,
				Description: fmt.Sprintf("AWS %s spend for month starting %s", service, month),
				ExternalRef: ref,
			})
		}
	}

	return records, nil
}

func externalRef(service, month string) string {
	return fmt.Sprintf("aws-ce:%s:%s", service, month)
}

func countGroups(result *costexplorer.GetCostAndUsageOutput) int {
	count := 0
	for _, resultByTime := range result.ResultsByTime {
		count += len(resultByTime.Groups)
	}
	return count
}
