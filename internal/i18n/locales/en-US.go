package locales

// MessagesEnUS English (US) messages
var MessagesEnUS = map[string]string{
	// Common messages
	"success":        "Operation successful",
	"common.success": "Success",
	"error":          "Operation failed",
	"unauthorized":   "Unauthorized",
	"forbidden":      "Forbidden",
	"not_found":      "Not found",
	"bad_request":    "Bad request",
	"internal_error": "Internal error",

	// Authentication related
	"auth.invalid_key":  "Invalid authorization key",
	"auth.key_required": "Authorization key required",
	"auth.admin_only":   "This operation requires the admin role",

	// Translation related
	"translation.created":          "Translation created successfully",
	"translation.updated":          "Translation updated successfully",
	"translation.not_found":        "Translation not found",
	"translation.duplicate":        "Translation already exists for this key, language and scope",
	"translation.not_customizable": "This translation cannot be customized",
	"translation.reserved_module":  "Module {{.Module}} is reserved and cannot be tenant-customized",

	// Bulk import related
	"import.completed":  "Import completed: {{.Created}} created, {{.Updated}} updated, {{.Skipped}} skipped",
	"import.validated":  "Payload validated, no changes applied",
	"import.batch_size": "Batch exceeds the maximum of {{.Max}} entries",

	// Keys and seeding
	"keys.registered": "{{.Count}} translation keys registered",
	"seed.completed":  "Baseline translations seeded",

	// Settings related
	"settings.updated": "Settings updated successfully",
}
