package notify

import (
	"sync"

	"github.com/asaskevich/EventBus"
)

const topicPrefix = "collection:"

// Event anuncia que a coleção gravada sob Key foi reescrita.
// Value carrega o novo conteúdo serializado quando disponível.
type Event struct {
	Key   string
	Value []byte
}

// Handler recebe eventos de mudança. É chamado de forma síncrona dentro
// de Publish, portanto não deve bloquear nem publicar novos eventos.
type Handler func(Event)

// Hub distribui eventos de mudança por chave de coleção
type Hub struct {
	bus EventBus.Bus

	topicMu sync.Mutex
	topics  map[string]bool

	mu        sync.RWMutex
	nextID    uint64
	listeners map[string]map[uint64]Handler
}

// NewHub cria um novo Hub
func NewHub() *Hub {
	return &Hub{
		bus:       EventBus.New(),
		topics:    make(map[string]bool),
		listeners: make(map[string]map[uint64]Handler),
	}
}

// Subscribe registra handler para a chave key e retorna a função que
// cancela o registro. A função de cancelamento é idempotente.
func (h *Hub) Subscribe(key string, handler Handler) func() {
	h.ensureTopic(key)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	set, ok := h.listeners[key]
	if !ok {
		set = make(map[uint64]Handler)
		h.listeners[key] = set
	}
	set[id] = handler
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners[key], id)
			h.mu.Unlock()
		})
	}
}

// Publish entrega ev a todos os handlers registrados para ev.Key
func (h *Hub) Publish(ev Event) {
	h.bus.Publish(topicPrefix+ev.Key, ev)
}

// Listeners retorna quantos handlers estão registrados para key
func (h *Hub) Listeners(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[key])
}

// ensureTopic assina o barramento uma única vez por chave. dispatch nunca
// adquire topicMu, evitando inversão de ordem com o lock interno do barramento.
func (h *Hub) ensureTopic(key string) {
	h.topicMu.Lock()
	defer h.topicMu.Unlock()
	if h.topics[key] {
		return
	}
	if err := h.bus.Subscribe(topicPrefix+key, h.dispatch); err != nil {
		// Subscribe só falha quando fn não é uma função
		panic(err)
	}
	h.topics[key] = true
}

func (h *Hub) dispatch(ev Event) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.listeners[ev.Key]))
	for _, handler := range h.listeners[ev.Key] {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	for _, handler := range handlers {
		handler(ev)
	}
}
