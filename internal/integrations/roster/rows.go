package roster

import (
	"fmt"
	"strings"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

const (
	membersRange  = "Members!A2:S"
	accountsRange = "Accounts!A4:AR"
)

// Колонки листа Members
const (
	memberLastName       = 0
	memberCertificate    = 1
	memberType           = 2
	memberPrimaryEmail   = 9
	memberSecondaryEmail = 10
)

// Колонки листа Accounts
const (
	accountCertificate       = 0
	accountLastName          = 1
	accountType              = 2
	accountMoneyOwed         = 41
	accountEligibleToReserve = 43
)

// cell возвращает значение ячейки строкой; короткие строки таблицы дополняются пустыми ячейками
func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

// parseMember собирает участника из строки листа Members
// Строки без номера сертификата пропускаются
func parseMember(row []interface{}) (domain.Member, bool) {
	certificate := cell(row, memberCertificate)
	if certificate == "" {
		return domain.Member{}, false
	}
	memberType := cell(row, memberType)

	return domain.Member{
		ID:                domain.MemberID(certificate, memberType),
		CertificateNumber: certificate,
		LastName:          cell(row, memberLastName),
		Type:              memberType,
		PrimaryEmail:      domain.NormalizeEmail(cell(row, memberPrimaryEmail)),
		SecondaryEmail:    domain.NormalizeEmail(cell(row, memberSecondaryEmail)),
	}, true
}

// parseAccount собирает счет из строки листа Accounts
// Заголовки, итоги и строки с некорректными данными отбрасываются
func parseAccount(row []interface{}) (domain.Account, bool) {
	certificate := cell(row, accountCertificate)
	accountType := cell(row, accountType)

	account := domain.Account{
		ID:                domain.MemberID(certificate, accountType),
		CertificateNumber: certificate,
		LastName:          cell(row, accountLastName),
		Type:              accountType,
		MoneyOwed:         cell(row, accountMoneyOwed) != "",
		EligibleToReserve: cell(row, accountEligibleToReserve) != "",
	}

	return account, account.IsAcceptable()
}

// toLite оставляет только идентификацию участника без контактов
func toLite(m domain.Member) domain.Member {
	m.PrimaryEmail = ""
	m.SecondaryEmail = ""
	return m
}
