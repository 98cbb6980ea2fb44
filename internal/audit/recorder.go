// internal/audit/recorder.go
package audit

import (
	"context"
	"log/slog"

	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/google/uuid"
)

// Entry describes one activity-log row to append.
type Entry struct {
	Action         string
	EntityType     string
	EntityID       uuid.UUID
	Description    string
	OldValues      model.JSONMap
	NewValues      model.JSONMap
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

// Recorder appends audit entries. The write is deliberately decoupled from
// the entity mutation: a failure is logged, never surfaced, and a crash
// between the two writes leaves a mutation with no log row.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// DBRecorder persists entries through the activity log repository.
type DBRecorder struct {
	repo repository.ActivityLogRepositoryIface
}

func NewDBRecorder(repo repository.ActivityLogRepositoryIface) *DBRecorder {
	return &DBRecorder{repo: repo}
}

func (r *DBRecorder) Record(ctx context.Context, entry Entry) {
	row := &model.ActivityLog{
		Action:         entry.Action,
		EntityType:     entry.EntityType,
		EntityID:       entry.EntityID.String(),
		Description:    entry.Description,
		OldValues:      entry.OldValues,
		NewValues:      entry.NewValues,
		OrganizationID: entry.OrganizationID,
		UserID:         entry.UserID,
	}
	if err := r.repo.Create(ctx, row); err != nil {
		slog.ErrorContext(ctx, "failed to record activity",
			"action", entry.Action,
			"entityType", entry.EntityType,
			"entityId", entry.EntityID,
			"error", err,
		)
	}
}

// NoOpRecorder discards entries, used in tests.
type NoOpRecorder struct{}

func (NoOpRecorder) Record(ctx context.Context, entry Entry) {}
