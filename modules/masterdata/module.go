package masterdata

import (
	"embed"

	"github.com/ensuredit/masterdata/modules/masterdata/infrastructure/persistence"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/controllers"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
)

//go:embed infrastructure/persistence/schema/masterdata-schema.sql
var SchemaFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	bus := app.EventPublisher()
	cache := services.NewCacheInvalidator(bus)

	rtoRepo := persistence.NewRTORepository()
	mmvRepo := persistence.NewMMVRepository()
	pincodeRepo := persistence.NewPincodeRepository()
	mappingStore := persistence.NewMappingRepository()
	allocator := services.NewCodeAllocator(persistence.NewMMVCodeIndex())

	app.RegisterServices(
		services.NewRTOService(rtoRepo, bus, cache),
		services.NewMMVService(mmvRepo, allocator, bus, cache),
		services.NewPincodeService(pincodeRepo, bus, cache),
		services.NewMappingService(mappingStore, mmvRepo, bus),
		services.NewBulkMappingService(mappingStore, bus),
	)

	app.RegisterControllers(
		controllers.NewRTOAPIController(app),
		controllers.NewMMVAPIController(app),
		controllers.NewPincodeAPIController(app),
		controllers.NewMappingAPIController(app),
		controllers.NewRegistryAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "masterdata"
}
