package operations

// Pipeline stage identifiers
const (
	StageIDSource      = "source"
	StageIDIntegration = "integration"
	StageIDScoring     = "scoring"
	StageIDAggregation = "aggregation"
	StageIDValidation  = "validation"
	StageIDExport      = "export"
)

// Pipeline stage names
const (
	StageNameSource      = "Source Acquisition"
	StageNameIntegration = "Data Integration"
	StageNameScoring     = "Score Derivation"
	StageNameAggregation = "Vessel Aggregation"
	StageNameValidation  = "Data Quality Validation"
	StageNameExport      = "Report Export"
)
