package types

type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// NewBurnQuery builds the feed query for burn transactions inside
// [from, to), both Unix seconds.
func NewBurnQuery(from, to int64) *GraphQLRequest {
	return &GraphQLRequest{
		Query: `query ($filter: TransactionFilter!) {
  transactions(filter: $filter) {
    items {
      amount
      block_time
      result_code
    }
  }
}`,
		Variables: map[string]interface{}{
			"filter": map[string]interface{}{
				"and": []map[string]interface{}{
					{"type": map[string]interface{}{"equal": "burn"}},
					{"action": map[string]interface{}{"equal": "burn"}},
					{"block_time": map[string]interface{}{"gte": from}},
					{"block_time": map[string]interface{}{"lt": to}},
				},
			},
		},
	}
}

type BurnTransaction struct {
	Amount     float64 `json:"amount"`
	BlockTime  int64   `json:"block_time"`
	ResultCode int     `json:"result_code"`
}

type BurnHistory struct {
	Data struct {
		Transactions struct {
			Items []BurnTransaction `json:"items"`
		} `json:"transactions"`
	} `json:"data"`
}
