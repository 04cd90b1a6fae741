// Package memory implementa los puertos de repositorio sobre mapas en memoria.
// Respaldo para desarrollo y tests: mismo contrato que los adaptadores de
// PostgreSQL, incluyendo atomicidad transaccional vía snapshot/restore.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// Store es el estado compartido de todos los repositorios en memoria. Guarda
// valores (no punteros) para que un snapshot sea una copia real del estado.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones

	products     map[string]entity.Product
	productOrder []string
	movements    []entity.StockMovement
	sales        map[string]entity.Sale
	saleOrder    []string
	sessions     map[string]entity.RegisterSession
	sessionOrder []string
	auditEvents  []entity.AuditEvent
	riskProfiles map[string]entity.RiskProfile
	users        map[string]entity.User
	userOrder    []string
	timeLogs     map[string]entity.TimeLog
	timeLogOrder []string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]entity.Product),
		sales:        make(map[string]entity.Sale),
		sessions:     make(map[string]entity.RegisterSession),
		riskProfiles: make(map[string]entity.RiskProfile),
		users:        make(map[string]entity.User),
		timeLogs:     make(map[string]entity.TimeLog),
	}
}

// snapshot copia el estado completo. Las entidades son valores; solo Lines de
// ventas requiere copia profunda (los repos ya guardan copias propias).
type snapshot struct {
	products     map[string]entity.Product
	productOrder []string
	movements    []entity.StockMovement
	sales        map[string]entity.Sale
	saleOrder    []string
	sessions     map[string]entity.RegisterSession
	sessionOrder []string
	auditEvents  []entity.AuditEvent
	riskProfiles map[string]entity.RiskProfile
}

func (s *Store) take() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		products:     copyMap(s.products),
		productOrder: append([]string(nil), s.productOrder...),
		movements:    append([]entity.StockMovement(nil), s.movements...),
		sales:        copyMap(s.sales),
		saleOrder:    append([]string(nil), s.saleOrder...),
		sessions:     copyMap(s.sessions),
		sessionOrder: append([]string(nil), s.sessionOrder...),
		auditEvents:  append([]entity.AuditEvent(nil), s.auditEvents...),
		riskProfiles: copyMap(s.riskProfiles),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.productOrder = snap.productOrder
	s.movements = snap.movements
	s.sales = snap.sales
	s.saleOrder = snap.saleOrder
	s.sessions = snap.sessions
	s.sessionOrder = snap.sessionOrder
	s.auditEvents = snap.auditEvents
	s.riskProfiles = snap.riskProfiles
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// transact serializa la transacción y restaura el snapshot si fn falla: todo o nada.
func (s *Store) transact(_ context.Context, fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.take()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// TxRunner adapta el Store a los contratos transaccionales de la capa de aplicación.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner transaccional en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta un checkout de venta de forma atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
) error) error {
	return r.store.transact(ctx, func() error {
		return fn(
			NewProductRepository(r.store),
			NewStockMovementRepository(r.store),
			NewSaleRepository(r.store),
			NewSessionRepository(r.store),
		)
	})
}

// RunLedger ejecuta una mutación de stock de forma atómica.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	auditRepo repository.AuditEventRepository,
) error) error {
	return r.store.transact(ctx, func() error {
		return fn(
			NewProductRepository(r.store),
			NewStockMovementRepository(r.store),
			NewAuditEventRepository(r.store),
		)
	})
}

// RunSession ejecuta un cierre de caja de forma atómica.
func (r *TxRunner) RunSession(ctx context.Context, fn func(
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditEventRepository,
) error) error {
	return r.store.transact(ctx, func() error {
		return fn(
			NewSessionRepository(r.store),
			NewAuditEventRepository(r.store),
		)
	})
}
