package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldMerchantID = "merchant_id"
	FieldInvoiceID  = "invoice_id"
	FieldItemID     = "item_id"
	FieldStatus     = "status"
	FieldDate       = "date"
	FieldDataDir    = "data_dir"
	FieldRows       = "rows"
	FieldCacheKey   = "cache_key"
	FieldCacheHit   = "cache_hit"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentAnalyst = "analyst"
	ComponentCache   = "cache"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpQuery    = "query"
	OpValidate = "validate"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
