package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: only .csv, .xlsx and .xls are accepted
//	          Patterns: "unsupported file format"
//	FILE002 - Empty input: the file or pasted text has no data
//	          Patterns: "empty input"
//	FILE003 - Parse failure: the content could not be read as a table
//	          Patterns: "parse failure"
//	FILE004 - File too large: request body exceeds the configured limit
//	          Patterns: "request body too large"
//	FILE005 - No input: neither a file nor pasted data was sent
//	          Patterns: "no input provided"
//
// # Correction Errors (COR001-COR099)
//
//	COR001 - Invalid column index
//	         Patterns: "invalid column index"
//	COR002 - Missing column mapping
//	         Patterns: "missing column_name"
//	COR003 - Invalid row index
//	         Patterns: "invalid row index"
//	COR004 - Malformed request body
//	         Patterns: "malformed request"
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Unknown export schema
//	         Patterns: "unknown schema"
//
// # Capacity Errors
//
//	RATE001 - Too many requests from one client
//	          Patterns: "rate limit"
//	UPL002  - Too many analyses running at once
//	          Patterns: "too many concurrent analyses"
//	UPL004  - Request cancelled
//	          Patterns: "context canceled"
//	UPL005  - Request timed out
//	          Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Support staff should check the
// application logs for the original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns go before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "Formato de arquivo não suportado",
			Action:  "Envie um arquivo .csv, .xlsx ou .xls",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty input",
		msg: UserMessage{
			Message: "Nenhum dado encontrado",
			Action:  "Envie um arquivo ou cole dados com cabeçalho e ao menos uma linha",
			Code:    "FILE002",
		},
	},
	{
		pattern: "parse failure",
		msg: UserMessage{
			Message: "Não foi possível ler os dados",
			Action:  "Verifique se o conteúdo é uma planilha ou CSV válido",
			Code:    "FILE003",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "Arquivo excede o tamanho máximo permitido",
			Action:  "Divida o arquivo em partes menores",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no input provided",
		msg: UserMessage{
			Message: "Nenhum arquivo ou dado enviado",
			Action:  "Selecione um arquivo ou cole os dados",
			Code:    "FILE005",
		},
	},

	// Correction errors
	{
		pattern: "invalid column index",
		msg: UserMessage{
			Message: "Índice de coluna inválido",
			Action:  "Reanalise os dados e aplique as correções novamente",
			Code:    "COR001",
		},
	},
	{
		pattern: "missing column_name",
		msg: UserMessage{
			Message: "Correção sem coluna identificável",
			Action:  "Informe column_name ou a lista de colunas",
			Code:    "COR002",
		},
	},
	{
		pattern: "invalid row index",
		msg: UserMessage{
			Message: "Índice de linha inválido",
			Action:  "Reanalise os dados e aplique as correções novamente",
			Code:    "COR003",
		},
	},
	{
		pattern: "malformed request",
		msg: UserMessage{
			Message: "Requisição inválida",
			Action:  "Verifique o corpo JSON enviado",
			Code:    "COR004",
		},
	},

	// Schema errors
	{
		pattern: "unknown schema",
		msg: UserMessage{
			Message: "Esquema de exportação desconhecido",
			Action:  "Consulte /api/schemas para os esquemas disponíveis",
			Code:    "SCH001",
		},
	},

	// Capacity errors
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Muitas requisições",
			Action:  "Aguarde um momento antes de tentar novamente",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many concurrent analyses",
		msg: UserMessage{
			Message: "O sistema está ocupado processando outras análises",
			Action:  "Aguarde um momento e tente novamente",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Requisição cancelada",
			Action:  "Tente novamente",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Tempo limite da requisição excedido",
			Action:  "Tente um arquivo menor ou verifique sua conexão",
			Code:    "UPL005",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Ocorreu um erro inesperado",
	Action:  "Tente novamente ou contate o suporte",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It returns
// the first pattern match, or a generic ERR000 message when nothing matches.
//
// Example:
//
//	msg := MapError(fmt.Errorf("correction 2: %w", ErrInvalidRowIndex))
//	// msg.Code == "COR003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Código: XXX). Action".
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}
	return NewUserError(err).Display()
}

// IsUserFacing reports whether err matches a known pattern, i.e. its mapped
// message is more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// Display formats the user message as "Message (Código: XXX). Action".
func (e *UserError) Display() string {
	return fmt.Sprintf("%s (Código: %s). %s", e.User.Message, e.User.Code, e.User.Action)
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
