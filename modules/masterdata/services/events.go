package services

import (
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
)

// Write events published on the application bus. Cache invalidation
// subscribes to these with record scope, so one save never flushes
// unrelated entries.

type RTOCreatedEvent struct {
	ID string
}

type RTOUpdatedEvent struct {
	ID string
}

type MMVCreatedEvent struct {
	Code mmv.Code
}

type MMVUpdatedEvent struct {
	Code mmv.Code
}

type PincodeCreatedEvent struct {
	Pincode string
}

type PincodeUpdatedEvent struct {
	Pincode string
}

type MappingUpdatedEvent struct {
	Kind    insurer.MasterKind
	Key     string
	Insurer string
}

type BulkUploadCompletedEvent struct {
	Kind    insurer.MasterKind
	Insurer string
	Result  BulkResult
}
