package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldKind       = "kind"
	FieldRecordID   = "record_id"
	FieldPeriod     = "period"
	FieldCount      = "count"
	FieldBackend    = "backend"
	FieldPath       = "path"
	FieldModel      = "model"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)

// Components
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentInsight = "insight"
	ComponentServer  = "server"
	ComponentExport  = "export"
)

// Operations
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpUpsert  = "upsert"
	OpClone   = "clone"
	OpSeed    = "seed"
	OpReplace = "replace"
)

// Record kinds
const (
	KindExpense    = "expense"
	KindBalance    = "balance"
	KindInvestment = "investment"
	KindDocument   = "document"
)
