package metric

import (
	"net/http"
	"time"
)

type (
	Factory interface {
		HTTP() HTTP
		Transaction() Transaction
		Orders() Orders
		Inventory() Inventory
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, path string, status int, duration time.Duration)
		SlowRequest(method, path string, status int, duration time.Duration)
	}

	Transaction interface {
		ObserveDuration(operation string, duration time.Duration)
		IncrementRetries(operation string)
		IncrementFailures(operation string)
	}

	Orders interface {
		Created(zone, modality string)
		Failed(kind string)
		HandoffFailed()
		StatusChanged(from, to string)
	}

	Inventory interface {
		Reconciled(created, updated, deleted int)
		Rejected(kind string)
	}
)
