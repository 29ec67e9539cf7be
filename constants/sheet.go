package constants

// Sheet names.
const (
	SheetExtracted    = "Extracted Data"
	SheetTables       = "Tables"
	SheetDocumentInfo = "Document Info"
	SheetTableSummary = "Table Summary"
	SheetStatistics   = "Statistics"
)

// Default output names.
const (
	DefaultTablesOutput = "output.xlsx"
	DefaultBatchOutput  = "batch_output.xlsx"
	IndividualDir       = "individual_excels"
)
