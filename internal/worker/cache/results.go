package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/model"
	"wallet-reputation/pkg/utils"
)

const (
	RESULT_CACHE_TTL     = 10 * time.Minute // 本地缓存过期时间
	RESULT_CACHE_CLEANUP = time.Minute
)

// ResultCache 每个钱包最近一次的出站结果, 仅供状态接口查询
type ResultCache struct {
	tl         *zap.Logger
	localCache *cache.Cache
}

// NewResultCache ttl <= 0 时使用默认过期时间
func NewResultCache(tl *zap.Logger, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = RESULT_CACHE_TTL
	}
	return &ResultCache{
		tl:         tl,
		localCache: cache.New(ttl, RESULT_CACHE_CLEANUP),
	}
}

func (c *ResultCache) Put(event *model.ScoreEvent) {
	if event == nil || event.WalletAddress == "" {
		return
	}
	c.localCache.SetDefault(utils.WalletResultKey(model.CATEGORY_DEXES, event.WalletAddress), event)
}

func (c *ResultCache) Get(walletAddress string) (*model.ScoreEvent, bool) {
	v, ok := c.localCache.Get(utils.WalletResultKey(model.CATEGORY_DEXES, walletAddress))
	if !ok {
		return nil, false
	}
	event, ok := v.(*model.ScoreEvent)
	return event, ok
}

func (c *ResultCache) Len() int {
	return c.localCache.ItemCount()
}

// Shutdown 清空缓存
func (c *ResultCache) Shutdown() {
	c.localCache.Flush()
	c.tl.Info("ResultCache shutdown")
}
