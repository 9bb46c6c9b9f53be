package usecase

import (
	"context"

	"ai-calling-agent/internal/agent/tools"

	"github.com/sirupsen/logrus"
)

// GuardedWriter runs creates inside the duplicate-suppression window, with
// the local mirror as fallback. It is shared with the tool registry.
type GuardedWriter interface {
	Create(ctx context.Context, key, entityName string, record any, create func() (string, error), assignID func(string)) (string, tools.Result, error)
}

// guardedCreate stores record through guard, or directly when guard is nil.
// A duplicate inside the window returns the first write's record.
func guardedCreate[T any](
	ctx context.Context,
	guard GuardedWriter,
	log *logrus.Logger,
	key, entityName string,
	record *T,
	create func() (string, error),
	assignID func(string),
	find func(id string) (*T, error),
) (*T, error) {
	if guard == nil {
		if _, err := create(); err != nil {
			return nil, err
		}
		return record, nil
	}

	id, res, err := guard.Create(ctx, key, entityName, record, create, assignID)
	if err != nil {
		return nil, err
	}
	if res["duplicate"] != true {
		return record, nil
	}

	existing, err := find(id)
	if err != nil {
		// Mirrored records are not in the store; answer with the submitted one.
		log.Debugf("Duplicate %s %s not readable from store: %+v", entityName, id, err)
		assignID(id)
		return record, nil
	}
	return existing, nil
}
