package eventbus

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventBus is an in-process publish/subscribe bus. Subscribers are
// plain functions of one argument; a published event is delivered to
// every subscriber whose parameter type the event is assignable to.
type EventBus interface {
	Publish(event interface{})
	Subscribe(handler interface{})
	Unsubscribe(handler interface{})
}

type eventBus struct {
	logger      *logrus.Logger
	mu          sync.RWMutex
	subscribers []*subscriber
}

type subscriber struct {
	argType reflect.Type
	fn      reflect.Value
}

func NewEventPublisher(logger *logrus.Logger) EventBus {
	return &eventBus{logger: logger}
}

func (e *eventBus) Publish(event interface{}) {
	eventType := reflect.TypeOf(event)
	e.mu.RLock()
	matched := make([]*subscriber, 0, len(e.subscribers))
	for _, s := range e.subscribers {
		if eventType.AssignableTo(s.argType) {
			matched = append(matched, s)
		}
	}
	e.mu.RUnlock()

	args := []reflect.Value{reflect.ValueOf(event)}
	for _, s := range matched {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.WithFields(logrus.Fields{
						"event": eventType.String(),
						"panic": r,
					}).Error("event handler panicked")
				}
			}()
			s.fn.Call(args)
		}()
	}
}

func (e *eventBus) Subscribe(handler interface{}) {
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 1 {
		panic("eventbus: handler must be a func with exactly one argument")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, &subscriber{
		argType: fn.Type().In(0),
		fn:      fn,
	})
}

func (e *eventBus) Unsubscribe(handler interface{}) {
	ptr := reflect.ValueOf(handler).Pointer()
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.subscribers {
		if s.fn.Pointer() == ptr {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}
