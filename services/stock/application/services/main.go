package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	domainsvcs "github.com/ghuser/stockroom/services/stock/domain/services"
	"github.com/ghuser/stockroom/services/stock/infrastructure/feed"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Catalog *StockCatalog
}

// New wires the stock catalog with the HTTP feed and the Redis feed cache.
func New(a *app.Application) *Services {
	var feedCache FeedCache
	if a.Redis != nil {
		feedCache = cache.NewFeedCache(a.Redis)
	}
	source := feed.NewHTTPFeed(a.Config.StockFeedURL, a.Config.StockFetchTimeout)
	parser := domainsvcs.NewStockParser(domainsvcs.DefaultLexicon())
	return &Services{
		Catalog: NewStockCatalog(source, feedCache, parser, a.Logger, a.Metrics),
	}
}
