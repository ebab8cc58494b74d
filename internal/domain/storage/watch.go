package storage

import (
	"sync"

	"github.com/hugohenrick/erp-caixa/pkg/notify"
)

// Watch assina as mudanças de key e chama onChange em uma goroutine
// própria. Eventos recebidos enquanto onChange executa são agrupados em
// uma única nova chamada, já que o assinante sempre relê o estado atual.
// A função retornada cancela a assinatura e é idempotente.
func Watch(store Store, key string, onChange func()) func() {
	signal := make(chan struct{}, 1)
	done := make(chan struct{})

	unsubscribe := store.OnChange(key, func(notify.Event) {
		select {
		case signal <- struct{}{}:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-signal:
				select {
				case <-done:
					return
				default:
				}
				onChange()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}
