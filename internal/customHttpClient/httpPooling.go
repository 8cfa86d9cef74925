package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/docuchat/docuchat/internal/config"
)

var (
	once   sync.Once
	pooled *http.Client
)

// Pooled returns the shared connection-pooled client handed to provider SDKs
// so repeated embedding and LLM round trips reuse connections.
func Pooled() *http.Client {
	once.Do(func() {
		pooled = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return pooled
}
