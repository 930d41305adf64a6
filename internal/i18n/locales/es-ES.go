package locales

// MessagesEsES Spanish messages
var MessagesEsES = map[string]string{
	// Common messages
	"success":        "Operación realizada con éxito",
	"common.success": "Éxito",
	"error":          "La operación falló",
	"unauthorized":   "No autorizado",
	"forbidden":      "Prohibido",
	"not_found":      "No encontrado",
	"bad_request":    "Solicitud inválida",
	"internal_error": "Error interno",

	// Authentication related
	"auth.invalid_key":  "Clave de autorización inválida",
	"auth.key_required": "Clave de autorización requerida",
	"auth.admin_only":   "Esta operación requiere el rol de administrador",

	// Translation related
	"translation.created":          "Traducción creada con éxito",
	"translation.updated":          "Traducción actualizada con éxito",
	"translation.not_found":        "Traducción no encontrada",
	"translation.duplicate":        "Ya existe una traducción para esta clave, idioma y ámbito",
	"translation.not_customizable": "Esta traducción no se puede personalizar",
	"translation.reserved_module":  "El módulo {{.Module}} está reservado y no puede personalizarse por inquilino",

	// Bulk import related
	"import.completed":  "Importación completada: {{.Created}} creadas, {{.Updated}} actualizadas, {{.Skipped}} omitidas",
	"import.validated":  "Carga validada, sin cambios aplicados",
	"import.batch_size": "El lote supera el máximo de {{.Max}} entradas",

	// Keys and seeding
	"keys.registered": "{{.Count}} claves de traducción registradas",
	"seed.completed":  "Traducciones base sembradas",

	// Settings related
	"settings.updated": "Configuración actualizada con éxito",
}
