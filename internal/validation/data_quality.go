package validation

import (
	"fmt"
	"log/slog"

	"fleetcli/internal/analytics"
	"fleetcli/pkg/contracts/domain"
)

// Validation outcome statuses.
const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

// Result is the advisory outcome of data-quality validation. Issues are
// surfaced to the caller and logged; they never abort a run.
type Result struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// OK reports whether validation passed without status-level problems.
func (r Result) OK() bool {
	return r.Status == StatusPassed
}

// missingFractionLimit is the share of missing cells above which the
// dataset is flagged as mostly unusable.
const missingFractionLimit = 0.5

// DataQualityValidator checks the integrated fact table for advisory
// quality problems: empty data, excessive missingness, and numeric
// columns with no variance.
type DataQualityValidator struct {
	logger *slog.Logger
}

// NewDataQualityValidator creates a data quality validator.
func NewDataQualityValidator(logger *slog.Logger) *DataQualityValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataQualityValidator{logger: logger}
}

// ValidateFacts validates the integrated fact table and returns a
// structured result. Empty data and a missing-cell fraction above 50%
// fail the status; zero-variance columns are recorded as issues without
// failing it.
func (v *DataQualityValidator) ValidateFacts(facts []domain.FactRecord) Result {
	result := Result{Status: StatusPassed}

	if len(facts) == 0 {
		result.Status = StatusFailed
		result.Issues = append(result.Issues, "dataset is empty")
		v.report(result)
		return result
	}

	if frac := missingFraction(facts); frac > missingFractionLimit {
		result.Status = StatusFailed
		result.Issues = append(result.Issues,
			fmt.Sprintf("more than 50%% missing data (%.1f%%)", frac*100))
	}

	for _, col := range analytics.DescribeFacts(facts) {
		if col.Count > 0 && col.Std == 0 {
			result.Issues = append(result.Issues,
				fmt.Sprintf("column %s: no variance", col.Name))
		}
	}

	v.report(result)
	return result
}

// missingFraction is the share of optional source cells (environment,
// fuel, specification) absent across the fact table.
func missingFraction(facts []domain.FactRecord) float64 {
	const (
		envCells  = 6
		fuelCells = 5
		specCells = 7
	)
	perRow := envCells + fuelCells + specCells

	missing := 0
	for i := range facts {
		if !facts[i].HasEnvironment {
			missing += envCells
		}
		if !facts[i].HasFuel {
			missing += fuelCells
		}
		if !facts[i].HasSpec {
			missing += specCells
		}
	}
	return float64(missing) / float64(len(facts)*perRow)
}

func (v *DataQualityValidator) report(result Result) {
	if len(result.Issues) == 0 {
		v.logger.Info("data validation passed")
		return
	}
	v.logger.Warn("data validation completed with issues",
		slog.String("status", result.Status),
		slog.Int("issue_count", len(result.Issues)))
	for _, issue := range result.Issues {
		v.logger.Warn("data quality issue", slog.String("issue", issue))
	}
}
