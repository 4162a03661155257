package services

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

func newTestBus() eventbus.EventBus {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return eventbus.NewEventPublisher(logger)
}

func TestMasterCache_RecordScopedInvalidation(t *testing.T) {
	bus := newTestBus()
	cache := NewCacheInvalidator(bus)

	cache.Set(insurer.KindRTO, "1", "mumbai")
	cache.Set(insurer.KindRTO, "2", "delhi")

	bus.Publish(RTOUpdatedEvent{ID: "1"})

	_, ok := cache.Get(insurer.KindRTO, "1")
	assert.False(t, ok)
	_, ok = cache.Get(insurer.KindRTO, "2")
	assert.True(t, ok, "untouched record stays cached")
}

func TestMasterCache_BulkUploadDropsWholeKind(t *testing.T) {
	bus := newTestBus()
	cache := NewCacheInvalidator(bus)

	cache.Set(insurer.KindMMV, "10110101", "activa")
	cache.Set(insurer.KindMMV, "10110102", "activa dlx")
	cache.Set(insurer.KindPincode, "400001", "mumbai")

	bus.Publish(BulkUploadCompletedEvent{Kind: insurer.KindMMV, Insurer: "icici"})

	_, ok := cache.Get(insurer.KindMMV, "10110101")
	assert.False(t, ok)
	_, ok = cache.Get(insurer.KindMMV, "10110102")
	assert.False(t, ok)
	_, ok = cache.Get(insurer.KindPincode, "400001")
	assert.True(t, ok, "other kinds are untouched")
}

func TestMasterCache_MappingEditInvalidatesItsRecord(t *testing.T) {
	bus := newTestBus()
	cache := NewCacheInvalidator(bus)

	cache.Set(insurer.KindPincode, "400001", "mumbai")
	bus.Publish(MappingUpdatedEvent{Kind: insurer.KindPincode, Key: "400001", Insurer: "icici"})

	_, ok := cache.Get(insurer.KindPincode, "400001")
	assert.False(t, ok)
}
