package analyzing

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/store"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ResultCache memoriza resultados de consultas por versão do snapshot.
// É esvaziado a cada troca de snapshot. Um ResultCache nil não memoriza nada.
type ResultCache struct {
	entries     *lru.Cache[string, any]
	unsubscribe func()
}

// NewResultCache cria o cache e o inscreve nas trocas de snapshot
func NewResultCache(size int, reader store.SnapshotReader) (*ResultCache, error) {
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}

	cache := &ResultCache{entries: entries}
	cache.unsubscribe = reader.Subscribe(func(snapshot domain.Snapshot) {
		entries.Purge()
		logrus.WithField("version", snapshot.Version).Debug("Cache de consultas esvaziado após troca de snapshot")
	})

	return cache, nil
}

// Len retorna a quantidade de entradas memorizadas
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Close cancela a inscrição no store
func (c *ResultCache) Close() {
	if c != nil && c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Memoize devolve o resultado memorizado para (operação, versão, parâmetros)
// ou executa compute e guarda o resultado quando não há erro.
func Memoize[T any](c *ResultCache, operation string, version uint64, params any, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}

	key := fmt.Sprintf("%s|%d|%s", operation, version, utils.CanonicalJson(params))
	if cached, ok := c.entries.Get(key); ok {
		if value, isT := cached.(T); isT {
			return value, nil
		}
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	c.entries.Add(key, value)
	return value, nil
}
