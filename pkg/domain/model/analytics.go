package model

// DailyUsage is one row of a per-day usage rollup. Date is YYYY-MM-DD in UTC.
type DailyUsage struct {
	Date  string
	Count int64
}

// ToolUsageReport is the daily rollup for a single tool
type ToolUsageReport struct {
	Tool       *Tool
	DailyUsage []DailyUsage
}

// CategoryStat aggregates the usage of all tools in one category
type CategoryStat struct {
	Category   string
	Count      int
	TotalUsage int64
	AvgUsage   float64
}

// UserActivity combines a user's favorite tools with the global list of
// recently used tools
type UserActivity struct {
	User          *User
	FavoriteTools []*Tool
	RecentlyUsed  []*Tool
}
