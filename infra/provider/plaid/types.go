package plaid

// Request and response shapes of the Plaid endpoints used by the client.

type transactionsGetOptions struct {
	Count                          int  `json:"count,omitempty"`
	Offset                         int  `json:"offset,omitempty"`
	IncludePersonalFinanceCategory bool `json:"include_personal_finance_category,omitempty"`
}

type transactionsGetResponse struct {
	Transactions      []plaidTransaction `json:"transactions"`
	TotalTransactions int                `json:"total_transactions"`
	RequestID         string             `json:"request_id"`
}

type plaidTransaction struct {
	TransactionID           string                   `json:"transaction_id"`
	AccountID               string                   `json:"account_id"`
	Amount                  float64                  `json:"amount"`
	IsoCurrencyCode         string                   `json:"iso_currency_code"`
	Date                    string                   `json:"date"`
	Name                    string                   `json:"name"`
	MerchantName            string                   `json:"merchant_name"`
	Pending                 bool                     `json:"pending"`
	Category                []string                 `json:"category"`
	PersonalFinanceCategory *personalFinanceCategory `json:"personal_finance_category,omitempty"`
}

type personalFinanceCategory struct {
	Primary  string `json:"primary"`
	Detailed string `json:"detailed"`
}

type accountsGetResponse struct {
	Accounts  []plaidAccount `json:"accounts"`
	RequestID string         `json:"request_id"`
}

type plaidAccount struct {
	AccountID    string        `json:"account_id"`
	Name         string        `json:"name"`
	OfficialName string        `json:"official_name"`
	Type         string        `json:"type"`
	Subtype      string        `json:"subtype"`
	Mask         string        `json:"mask"`
	Balances     plaidBalances `json:"balances"`
}

type plaidBalances struct {
	Current         *float64 `json:"current"`
	Available       *float64 `json:"available"`
	IsoCurrencyCode string   `json:"iso_currency_code"`
}

type errorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id"`
}
