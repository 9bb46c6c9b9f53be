package tools

import (
	"context"
	"strconv"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/service"

	"github.com/sirupsen/logrus"
)

// WriteGuard wraps creates in the duplicate-suppression window and falls back
// to the local mirror when the store is unreachable. Both the tools and the
// REST usecases write through it, so a booking submitted twice from either
// side lands once.
type WriteGuard struct {
	dedup  Deduplicator
	mirror Mirror
	log    *logrus.Logger
}

// NewWriteGuard builds a guard; a nil dedup or mirror disables that part.
func NewWriteGuard(dedup Deduplicator, mirror Mirror, log *logrus.Logger) *WriteGuard {
	return &WriteGuard{dedup: dedup, mirror: mirror, log: log}
}

func AppointmentKey(a *entity.Appointment) string {
	return service.DedupKey("appointment", a.EntityID.String(), a.Type, a.PersonName, a.Date, a.Time, a.UserEmail)
}

func OrderKey(o *entity.Order) string {
	return service.DedupKey("order", o.CompanyID.String(), o.Item, strconv.Itoa(o.Quantity), o.UserEmail)
}

func FeedbackKey(f *entity.Feedback) string {
	return service.DedupKey("feedback", f.UserEmail, f.EntityID.String(), strconv.Itoa(f.Rating), f.Comment)
}

// Create runs create inside the window keyed by key. A duplicate returns the
// first write's id with "duplicate": true and does not call create.
//
// assignID sets the record's id. An id the store generated before failing is
// cleared so the mirror assigns a local one, and the mirrored id is assigned
// back afterwards.
func (g *WriteGuard) Create(ctx context.Context, key, entityName string, record any, create func() (string, error), assignID func(string)) (string, Result, error) {
	var claim *service.DedupClaim
	if g.dedup != nil {
		c, err := g.dedup.Claim(ctx, key)
		if err != nil {
			// Writes proceed without the window when Redis is down.
			g.log.Warnf("Dedup window unavailable for %s: %+v", entityName, err)
		} else if c.Duplicate {
			g.log.Infof("Suppressed duplicate %s write", entityName)
			return c.ExistingID, Result{"success": true, "duplicate": true}, nil
		} else {
			claim = c
		}
	}

	id, err := create()
	if err != nil && !apperr.IsDomain(err) && g.mirror != nil {
		g.log.Warnf("Store unavailable, mirroring %s locally: %+v", entityName, err)
		assignID("")
		localID, mirrorErr := g.mirror.Save(entityName, record)
		if mirrorErr == nil {
			assignID(localID)
			g.commit(ctx, claim, localID)
			return localID, Result{"success": true, "offline": true}, nil
		}
		g.log.Warnf("Failed to mirror %s: %+v", entityName, mirrorErr)
	}
	if err != nil {
		if claim != nil {
			_ = g.dedup.Release(ctx, claim)
		}
		return "", nil, err
	}

	g.commit(ctx, claim, id)
	return id, Result{"success": true}, nil
}

func (g *WriteGuard) commit(ctx context.Context, claim *service.DedupClaim, id string) {
	if claim == nil {
		return
	}
	if err := g.dedup.Commit(ctx, claim, id); err != nil {
		g.log.Warnf("Failed to commit dedup claim: %+v", err)
	}
}
