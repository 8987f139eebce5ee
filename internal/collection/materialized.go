package collection

import (
	"sync"

	"github.com/go-gridframe/gridframe/internal/pcache"
	uuid "github.com/gofrs/uuid"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// materialized is the evaluated form of one stage: an ordered set of
// partition IDs whose contents live either in the partition cache (when the
// partition holds only tabular blocks and may be spilled to disk) or in a
// loose in-memory map (anything else). Partitions are taken at most once.
type materialized struct {
	cache pcache.Cache
	ids   []string
	lock  sync.Mutex
	loose map[string][]interface{}
}

func newMaterialized(cache pcache.Cache) *materialized {
	return &materialized{
		cache: cache,
		loose: make(map[string][]interface{}),
	}
}

// put registers els as the next partition. Not safe for concurrent use;
// stages put their partitions sequentially after the parallel phase joins.
func (m *materialized) put(els []interface{}) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	key := id.String()
	m.ids = append(m.ids, key)
	if blocks, ok := asBlocks(els); ok && len(blocks) > 0 {
		return m.cache.Add(key, blocks)
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.loose[key] = els
	return nil
}

// take removes partition i from this materialized set and returns its
// elements. Safe for concurrent use across distinct i.
func (m *materialized) take(i int) ([]interface{}, error) {
	key := m.ids[i]
	m.lock.Lock()
	if els, ok := m.loose[key]; ok {
		delete(m.loose, key)
		m.lock.Unlock()
		return els, nil
	}
	m.lock.Unlock()
	blocks, err := m.cache.Get(key)
	if err != nil {
		return nil, err
	}
	els := make([]interface{}, len(blocks))
	for j, b := range blocks {
		els[j] = b
	}
	return els, nil
}

func (m *materialized) numPartitions() int {
	return len(m.ids)
}

// destroy discards the backing cache, including any spilled files
func (m *materialized) destroy() {
	m.cache.Destroy()
}

func asBlocks(els []interface{}) ([]*dataframe.DataFrame, bool) {
	blocks := make([]*dataframe.DataFrame, len(els))
	for i, el := range els {
		b, ok := el.(*dataframe.DataFrame)
		if !ok {
			return nil, false
		}
		blocks[i] = b
	}
	return blocks, true
}
