package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldUserID      = "user_id"
	FieldUsername    = "username"
	FieldTemplateID  = "template_id"
	FieldOccurrence  = "occurrence"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldCreated     = "created"
	FieldSweepDate   = "sweep_date"
	FieldExportName  = "export_name"
	FieldMimeType    = "mime_type"
	FieldHandle      = "handle"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentSweep   = "sweep"
	ComponentExport  = "export"
	ComponentAuth    = "auth"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpExpand   = "expand"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
