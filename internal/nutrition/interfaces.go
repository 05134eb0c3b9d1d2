package nutrition

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/analyzer_mock.go -package=mock

// Analyzer turns a free-text food description into matched food items.
type Analyzer interface {
	Analyze(ctx context.Context, query string) ([]FoodItem, error)
}
