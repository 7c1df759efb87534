package dto

// AddHoldingRequest upserts one portfolio position by ticker. Optional fields
// left at their zero value are treated as not provided and never overwrite a
// stored value on update.
type AddHoldingRequest struct {
	Ticker        string   `json:"ticker"`
	CompanyName   string   `json:"company_name"`
	Sector        string   `json:"sector"`
	IndexGroup    string   `json:"index_group"`
	BuyPrice      *float64 `json:"buy_price"`
	CurrentPrice  *float64 `json:"current_price"`
	ChangeValue   *float64 `json:"change_value"`
	ChangePercent *float64 `json:"change_percent"`
	Volume        *int64   `json:"volume"`
	MarketCap     *float64 `json:"market_cap"`
}

// HoldingResponse is one valued portfolio position.
type HoldingResponse struct {
	ID             uint    `json:"id"`
	Ticker         string  `json:"ticker"`
	CompanyName    string  `json:"company_name"`
	Sector         string  `json:"sector"`
	IndexGroup     string  `json:"index_group"`
	BuyPrice       float64 `json:"buy_price"`
	CurrentPrice   float64 `json:"current_price"`
	InvestedAmount float64 `json:"invested_amount"`
	ChangeValue    float64 `json:"change_value"`
	ChangePercent  float64 `json:"change_percent"`
	IsPositive     bool    `json:"is_positive"`
	Volume         *int64  `json:"volume"`
	MarketCap      float64 `json:"market_cap"`
	LastUpdated    string  `json:"last_updated,omitempty"`
}

// PortfolioResponse is the valued portfolio with aggregate totals. Totals are
// accumulated unrounded and rounded only here, at the presentation boundary.
type PortfolioResponse struct {
	Data               []HoldingResponse `json:"data"`
	TotalInvested      float64           `json:"total_invested"`
	TotalCurrent       float64           `json:"total_current"`
	TotalChange        float64           `json:"total_change"`
	TotalChangePercent float64           `json:"total_change_percent"`
}
