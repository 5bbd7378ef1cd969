package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

const metricsService = "sheets"

// Client резолвер участников и счетов по таблице клуба
type Client struct {
	reader  ValuesReader
	metrics Metrics
	log     Logger
}

// NewClient создает новый экземпляр клиента реестра
func NewClient(reader ValuesReader, metrics Metrics, log Logger) *Client {
	return &Client{
		reader:  reader,
		metrics: metrics,
		log:     log,
	}
}

// GetSheetMembers возвращает все строки листа Members без фильтрации по счетам
func (c *Client) GetSheetMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := c.read(ctx, "members", membersRange)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		if member, ok := parseMember(row); ok {
			members = append(members, member)
		}
	}
	return members, nil
}

// GetAllAccounts возвращает корректные строки листа Accounts
func (c *Client) GetAllAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := c.read(ctx, "accounts", accountsRange)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		if account, ok := parseAccount(row); ok {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// GetAllAccountsDict возвращает счета по ID участника
func (c *Client) GetAllAccountsDict(ctx context.Context) (map[string]domain.Account, error) {
	accounts, err := c.GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	dict := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		dict[a.ID] = a
	}
	return dict, nil
}

// GetAllMembers возвращает участников, у которых есть счет
// lite убирает контактные данные
func (c *Client) GetAllMembers(ctx context.Context, lite bool) ([]domain.Member, error) {
	members, accounts, err := c.membersWithAccounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if _, ok := accounts[m.ID]; !ok {
			continue
		}
		if lite {
			m = toLite(m)
		}
		result = append(result, m)
	}
	return result, nil
}

// GetAllPaidMembersDict возвращает участников с правом бронирования по ID
func (c *Client) GetAllPaidMembersDict(ctx context.Context, lite bool) (map[string]domain.Member, error) {
	members, accounts, err := c.membersWithAccounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.Member)
	for _, m := range members {
		account, ok := accounts[m.ID]
		if !ok || !account.EligibleToReserve {
			continue
		}
		if lite {
			m = toLite(m)
		}
		result[m.ID] = m
	}
	return result, nil
}

// FindMemberByEmail ищет участника по основному или дополнительному email без учета регистра
// Ровно одно совпадение, иначе ErrMemberNotFound или ErrMultipleMembersFound
func (c *Client) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	members, err := c.GetSheetMembers(ctx)
	if err != nil {
		return nil, err
	}

	var found []domain.Member
	for _, m := range members {
		if m.HasEmail(email) {
			found = append(found, m)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no member with email %s", ErrMemberNotFound, email)
	case 1:
		return &found[0], nil
	default:
		c.log.Warn("Roster: email %s matches %d members", email, len(found))
		return nil, fmt.Errorf("%w: %d members share email %s", ErrMultipleMembersFound, len(found), email)
	}
}

func (c *Client) membersWithAccounts(ctx context.Context) ([]domain.Member, map[string]domain.Account, error) {
	members, err := c.GetSheetMembers(ctx)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := c.GetAllAccountsDict(ctx)
	if err != nil {
		return nil, nil, err
	}
	return members, accounts, nil
}

func (c *Client) read(ctx context.Context, operation, readRange string) ([][]interface{}, error) {
	started := time.Now()
	rows, err := c.reader.GetValues(ctx, readRange)
	if c.metrics != nil {
		c.metrics.ObserveExternalCall(metricsService, operation, started, err)
	}
	if err != nil {
		c.log.Error("Roster: failed to read %s: %v", readRange, err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrInternal, readRange, err)
	}
	return rows, nil
}
