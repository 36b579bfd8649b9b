package model

// StatsResponse is the API response for GET /api/stats.
type StatsResponse struct {
	TotalChannels int            `json:"totalChannels"`
	Unreviewed    int            `json:"unreviewed"`
	Approved      int            `json:"approved"`
	Rejected      int            `json:"rejected"`
	Unsubscribed  int            `json:"unsubscribed"`
	Starred       int            `json:"starred"`
	Skipped       int            `json:"skipped"`
	PoolSizes     map[string]int `json:"poolSizes"`
	CacheEntries  int            `json:"cacheEntries"`
}
