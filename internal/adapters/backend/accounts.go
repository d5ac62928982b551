package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
)

// closeReason is sent with the alternate close call.
const closeReason = "사용자 요청에 의한 계좌 해지"

func accountPath(accountID string) string {
	return "/api/accounts/" + url.PathEscape(accountID)
}

// GetAccount fetches one account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (any, error) {
	return c.do(ctx, http.MethodGet, accountPath(accountID), nil, nil)
}

// ListAccounts fetches the caller's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]any, error) {
	const path = "/api/accounts/my"
	decoded, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return pageContent(http.MethodGet, path, decoded)
}

// CloseAccount closes an account. The primary verb is a bodiless PATCH; the alternate
// verb is a PUT carrying the new status, for backends that do not route PATCH.
func (c *Client) CloseAccount(ctx context.Context, accountID string, verb domain.CloseVerb) (any, error) {
	path := accountPath(accountID) + "/close"
	switch verb {
	case domain.ClosePrimary:
		return c.do(ctx, http.MethodPatch, path, nil, nil)
	case domain.CloseAlternate:
		return c.do(ctx, http.MethodPut, path, nil, map[string]string{
			"status":       string(domain.Closed),
			"updateReason": closeReason,
		})
	default:
		return nil, fmt.Errorf("unknown close verb %q", verb)
	}
}
