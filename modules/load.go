package modules

import (
	"github.com/ensuredit/masterdata/modules/masterdata"
	"github.com/ensuredit/masterdata/pkg/application"
)

var BuiltInModules = []application.Module{
	masterdata.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
