package roster

import "errors"

var (
	// ErrMemberNotFound возвращается, когда email не совпал ни с одним участником
	ErrMemberNotFound = errors.New("roster: member not found")

	// ErrMultipleMembersFound возвращается, когда email совпал с несколькими участниками
	ErrMultipleMembersFound = errors.New("roster: multiple members found")

	// ErrInternal возвращается при ошибках чтения таблицы
	ErrInternal = errors.New("roster: internal error")
)
