package locales

// MessagesPtBR Brazilian Portuguese messages
var MessagesPtBR = map[string]string{
	// Common messages
	"success":        "Operação realizada com sucesso",
	"common.success": "Sucesso",
	"error":          "Falha na operação",
	"unauthorized":   "Não autorizado",
	"forbidden":      "Proibido",
	"not_found":      "Não encontrado",
	"bad_request":    "Requisição inválida",
	"internal_error": "Erro interno",

	// Authentication related
	"auth.invalid_key":  "Chave de autorização inválida",
	"auth.key_required": "Chave de autorização obrigatória",
	"auth.admin_only":   "Esta operação exige o papel de administrador",

	// Translation related
	"translation.created":          "Tradução criada com sucesso",
	"translation.updated":          "Tradução atualizada com sucesso",
	"translation.not_found":        "Tradução não encontrada",
	"translation.duplicate":        "Já existe uma tradução para esta chave, idioma e escopo",
	"translation.not_customizable": "Esta tradução não pode ser personalizada",
	"translation.reserved_module":  "O módulo {{.Module}} é reservado e não pode ser personalizado por inquilino",

	// Bulk import related
	"import.completed":  "Importação concluída: {{.Created}} criadas, {{.Updated}} atualizadas, {{.Skipped}} ignoradas",
	"import.validated":  "Carga validada, nenhuma alteração aplicada",
	"import.batch_size": "O lote excede o máximo de {{.Max}} entradas",

	// Keys and seeding
	"keys.registered": "{{.Count}} chaves de tradução registradas",
	"seed.completed":  "Traduções de base semeadas",

	// Settings related
	"settings.updated": "Configurações atualizadas com sucesso",
}
