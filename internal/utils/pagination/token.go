package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeHistoryToken creates the token for the next page of an account's history.
// The backend pages by number; the token binds that number to the account so a token
// cannot be replayed against another account's history.
func EncodeHistoryToken(accountID string, page int) string {
	return EncodeMultiFieldToken("h", accountID, strconv.Itoa(page))
}

// DecodeHistoryToken returns the page number carried by token. An empty token means
// the first page.
func DecodeHistoryToken(token string, accountID string) (int, error) {
	if token == "" {
		return 0, nil
	}
	fields, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(fields) != 3 || fields[0] != "h" {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if fields[1] != accountID {
		return 0, fmt.Errorf("invalid pagination token (issued for another account)")
	}
	page, err := strconv.Atoi(fields[2])
	if err != nil || page < 0 {
		return 0, fmt.Errorf("invalid pagination token format (page parse)")
	}
	return page, nil
}
