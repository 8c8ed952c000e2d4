package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldBackend       = "backend"
	FieldLocation      = "location"
	FieldCount         = "count"
	FieldDate          = "date"
	FieldKind          = "type"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldThreshold     = "threshold"
	FieldKeyword       = "keyword"
	FieldExchange      = "exchange"
	FieldQueue         = "queue"
	FieldEvent         = "event"
	FieldSignal        = "signal"
	FieldDurationMs    = "duration_ms"
	FieldSchemaVersion = "schema_version"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
	ComponentShell   = "shell"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpLoad     = "load"
	OpSave     = "save"
	OpList     = "list"
	OpFilter   = "filter"
	OpSearch   = "search"
	OpSort     = "sort"
	OpChart    = "chart"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds the searchable fields of a transaction.
// The description is left out as free text.
func (f LogFields) WithTransaction(date, kind, category string, amount float64) LogFields {
	f[FieldDate] = date
	f[FieldKind] = kind
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
