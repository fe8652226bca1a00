package pipeline

// Step names reported through progress events and log lines.
const (
	StepExtractDocument = "extract_document"
	StepNormalize       = "normalize"
	StepExtractProfile  = "extract_profile"
	StepAnalyzeJob      = "analyze_job"
	StepTailor          = "tailor"
	StepCoverage        = "coverage"
	StepAssemble        = "assemble"
	StepRender          = "render"
)

// Step categories.
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryTailoring = "tailoring"
	CategoryOutput    = "output"
)
