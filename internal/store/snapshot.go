// Package store mantém o snapshot de vendas compartilhado pela aplicação
package store

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Listener é chamado após cada troca de snapshot, fora do lock
type Listener func(snapshot domain.Snapshot)

// SnapshotReader é a visão somente leitura usada pelos casos de uso
type SnapshotReader interface {
	GetAll() domain.Snapshot
	Version() uint64
	Subscribe(fn Listener) func()
}

// SnapshotStore guarda o conjunto atual de registros. Cada mutação publica um
// novo slice com nova versão; snapshots já entregues nunca são alterados.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshot  domain.Snapshot
	listeners map[uint64]Listener
	nextID    uint64
	now       func() time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshot:  domain.Snapshot{Records: []domain.SalesRecord{}},
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
}

// GetAll retorna o snapshot atual
func (s *SnapshotStore) GetAll() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Version retorna a versão do snapshot atual; zero antes da primeira carga
func (s *SnapshotStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version
}

// Add anexa registros ao snapshot, gerando IDs para os que não possuem
func (s *SnapshotStore) Add(records ...domain.SalesRecord) (domain.Snapshot, error) {
	added := make([]domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return domain.Snapshot{}, errors.Wrap(err, "erro ao gerar ID do registro")
			}
			record.ID = id
		}
		added = append(added, record)
	}

	s.mu.Lock()
	current := s.snapshot.Records
	next := make([]domain.SalesRecord, 0, len(current)+len(added))
	next = append(next, current...)
	next = append(next, added...)
	snapshot := s.swap(next)
	listeners := s.copyListeners()
	s.mu.Unlock()

	logrus.Debugf("Snapshot v%d: %d registros adicionados (total %d)", snapshot.Version, len(added), snapshot.Len())
	notify(listeners, snapshot)

	return snapshot, nil
}

// Replace substitui o snapshot inteiro. O slice recebido é copiado.
func (s *SnapshotStore) Replace(records []domain.SalesRecord) domain.Snapshot {
	next := make([]domain.SalesRecord, len(records))
	copy(next, records)

	s.mu.Lock()
	snapshot := s.swap(next)
	listeners := s.copyListeners()
	s.mu.Unlock()

	logrus.Debugf("Snapshot v%d substituído com %d registros", snapshot.Version, snapshot.Len())
	notify(listeners, snapshot)

	return snapshot
}

// Subscribe registra um listener e retorna a função que o remove
func (s *SnapshotStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// swap deve ser chamado com o lock de escrita
func (s *SnapshotStore) swap(records []domain.SalesRecord) domain.Snapshot {
	s.snapshot = domain.Snapshot{
		Version:  s.snapshot.Version + 1,
		Records:  records,
		LoadedAt: s.now(),
	}
	return s.snapshot
}

func (s *SnapshotStore) copyListeners() []Listener {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []Listener, snapshot domain.Snapshot) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Store é o contrato completo do SnapshotStore, de leitura e escrita
type Store interface {
	SnapshotReader
	Add(records ...domain.SalesRecord) (domain.Snapshot, error)
	Replace(records []domain.SalesRecord) domain.Snapshot
}
