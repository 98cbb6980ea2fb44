// internal/service/workorder.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/nexus/internal/domain"
	"github.com/dangerclosesec/nexus/internal/email"
	"github.com/dangerclosesec/nexus/internal/email/mailer"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/dangerclosesec/nexus/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type WorkOrderService struct {
	repo      repository.WorkOrderRepositoryIface
	orgRepo   repository.OrganizationRepositoryIface
	userRepo  repository.UserRepositoryIface
	assetRepo repository.AssetRepositoryIface
	email     *email.Service
	validate  *validator.Validate
}

func NewWorkOrderService(
	repo repository.WorkOrderRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	assetRepo repository.AssetRepositoryIface,
	emailService *email.Service,
) *WorkOrderService {
	return &WorkOrderService{
		repo:      repo,
		orgRepo:   orgRepo,
		userRepo:  userRepo,
		assetRepo: assetRepo,
		email:     emailService,
		validate:  validator.New(),
	}
}

type CreateWorkOrderInput struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Type           string     `json:"type"`
	DueDate        *string    `json:"dueDate"`
	ScheduledDate  *string    `json:"scheduledDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	Instructions   string     `json:"instructions"`
	Parts          string     `json:"parts"`
	Tools          string     `json:"tools"`
	SafetyNotes    string     `json:"safetyNotes"`
	Notes          string     `json:"notes"`
	OrganizationID uuid.UUID  `json:"organizationId" validate:"required"`
	AssetID        *uuid.UUID `json:"assetId"`
	AssignedToID   *uuid.UUID `json:"assignedToId"`
	CreatedByID    uuid.UUID  `json:"createdById" validate:"required"`
}

func (s *WorkOrderService) Create(ctx context.Context, input CreateWorkOrderInput) (*model.WorkOrder, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	status := model.WorkOrderOpen
	if input.Status != "" {
		parsed, err := model.ParseWorkOrderStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		status = parsed
	}
	priority := model.CriticalityMedium
	if input.Priority != "" {
		parsed, err := model.ParsePriority(input.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		priority = parsed
	}

	if _, err := s.orgRepo.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.CreatedByID); err != nil {
		return nil, err
	}
	if input.AssignedToID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssignedToID); err != nil {
			return nil, err
		}
	}
	if input.AssetID != nil {
		asset, err := s.assetRepo.FindByID(ctx, *input.AssetID)
		if err != nil {
			return nil, err
		}
		if asset.OrganizationID != input.OrganizationID {
			return nil, domain.ErrAssetOrgMismatch
		}
	}

	number, err := s.nextWorkOrderNumber(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	wo := &model.WorkOrder{
		WorkOrderNumber: number,
		Title:           input.Title,
		Description:     input.Description,
		Status:          status,
		Priority:        priority,
		Type:            input.Type,
		EstimatedHours:  input.EstimatedHours,
		Instructions:    input.Instructions,
		Parts:           input.Parts,
		Tools:           input.Tools,
		SafetyNotes:     input.SafetyNotes,
		Notes:           input.Notes,
		OrganizationID:  input.OrganizationID,
		AssetID:         input.AssetID,
		AssignedToID:    input.AssignedToID,
		CreatedByID:     input.CreatedByID,
	}
	if err := mergeDate(&wo.DueDate, input.DueDate); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if err := mergeDate(&wo.ScheduledDate, input.ScheduledDate); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, wo); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, wo.ID)
	if err != nil {
		return nil, err
	}

	if created.AssignedToID != nil {
		s.notifyAssignment(ctx, created)
	}

	return created, nil
}

// nextWorkOrderNumber formats count+1 for the organization. The read and the
// later insert are not isolated from concurrent creates, so two requests can
// mint the same number; numbers are never reused after that.
func (s *WorkOrderService) nextWorkOrderNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	count, err := s.repo.CountByOrganization(ctx, orgID)
	if err != nil {
		return "", err
	}
	return model.FormatWorkOrderNumber(count + 1), nil
}

func (s *WorkOrderService) Get(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	return s.repo.FindByIDExpanded(ctx, id)
}

func (s *WorkOrderService) List(ctx context.Context, filter repository.WorkOrderFilter) ([]*model.WorkOrder, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

// UpdateWorkOrderInput is a partial update: nil fields are left untouched.
// The work order number is immutable and deliberately absent.
type UpdateWorkOrderInput struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	Type           *string    `json:"type"`
	DueDate        *string    `json:"dueDate"`
	ScheduledDate  *string    `json:"scheduledDate"`
	CompletedAt    *string    `json:"completedAt"`
	EstimatedHours *float64   `json:"estimatedHours"`
	ActualHours    *float64   `json:"actualHours"`
	Instructions   *string    `json:"instructions"`
	Parts          *string    `json:"parts"`
	Tools          *string    `json:"tools"`
	SafetyNotes    *string    `json:"safetyNotes"`
	Notes          *string    `json:"notes"`
	AssetID        *uuid.UUID `json:"assetId"`
	AssignedToID   *uuid.UUID `json:"assignedToId"`
}

func (s *WorkOrderService) Update(ctx context.Context, id uuid.UUID, input UpdateWorkOrderInput) (*model.WorkOrder, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousAssignee := wo.AssignedToID

	if input.Status != nil {
		status, err := model.ParseWorkOrderStatus(*input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		wo.Status = status
	}
	if input.Priority != nil {
		priority, err := model.ParsePriority(*input.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		wo.Priority = priority
	}
	if input.AssetID != nil {
		asset, err := s.assetRepo.FindByID(ctx, *input.AssetID)
		if err != nil {
			return nil, err
		}
		if asset.OrganizationID != wo.OrganizationID {
			return nil, domain.ErrAssetOrgMismatch
		}
		wo.AssetID = input.AssetID
	}
	if input.AssignedToID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssignedToID); err != nil {
			return nil, err
		}
		wo.AssignedToID = input.AssignedToID
	}

	mergeString(&wo.Title, input.Title)
	mergeString(&wo.Description, input.Description)
	mergeString(&wo.Type, input.Type)
	mergeString(&wo.Instructions, input.Instructions)
	mergeString(&wo.Parts, input.Parts)
	mergeString(&wo.Tools, input.Tools)
	mergeString(&wo.SafetyNotes, input.SafetyNotes)
	mergeString(&wo.Notes, input.Notes)
	if input.EstimatedHours != nil {
		wo.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		wo.ActualHours = input.ActualHours
	}
	for _, merge := range []struct {
		dst **time.Time
		src *string
	}{
		{&wo.DueDate, input.DueDate},
		{&wo.ScheduledDate, input.ScheduledDate},
		{&wo.CompletedAt, input.CompletedAt},
	} {
		if err := mergeDate(merge.dst, merge.src); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
	}

	if err := s.repo.Update(ctx, wo); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newlyAssigned := updated.AssignedToID != nil &&
		(previousAssignee == nil || *previousAssignee != *updated.AssignedToID)
	if newlyAssigned {
		s.notifyAssignment(ctx, updated)
	}

	return updated, nil
}

type ScheduleMaintenanceInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	ScheduledDate  *string    `json:"scheduledDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	Instructions   string     `json:"instructions"`
	AssignedToID   *uuid.UUID `json:"assignedToId"`
	CreatedByID    uuid.UUID  `json:"createdById" validate:"required"`
}

// ScheduleMaintenance derives a preventive-maintenance work order from an
// asset. The asset's organization, not any client-supplied value, scopes the
// new work order.
func (s *WorkOrderService) ScheduleMaintenance(ctx context.Context, assetID uuid.UUID, input ScheduleMaintenanceInput) (*model.WorkOrder, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = fmt.Sprintf("Scheduled Maintenance - %s", asset.Name)
	}
	priority := model.CriticalityMedium
	if input.Priority != "" {
		parsed, err := model.ParsePriority(input.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		priority = parsed
	}

	number, err := s.nextWorkOrderNumber(ctx, asset.OrganizationID)
	if err != nil {
		return nil, err
	}

	wo := &model.WorkOrder{
		WorkOrderNumber: number,
		Title:           title,
		Description:     input.Description,
		Type:            model.TypePreventiveMaintenance,
		Status:          model.WorkOrderOpen,
		Priority:        priority,
		EstimatedHours:  input.EstimatedHours,
		Instructions:    input.Instructions,
		OrganizationID:  asset.OrganizationID,
		AssetID:         &asset.ID,
		AssignedToID:    input.AssignedToID,
		CreatedByID:     input.CreatedByID,
	}
	if err := mergeDate(&wo.ScheduledDate, input.ScheduledDate); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, wo); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, wo.ID)
	if err != nil {
		return nil, err
	}

	if created.AssignedToID != nil {
		s.notifyAssignment(ctx, created)
	}

	return created, nil
}

func (s *WorkOrderService) MaintenanceHistory(ctx context.Context, assetID uuid.UUID) ([]*model.WorkOrder, error) {
	if _, err := s.assetRepo.FindByID(ctx, assetID); err != nil {
		return nil, err
	}
	return s.repo.FindMaintenanceHistory(ctx, assetID)
}

type AddCommentInput struct {
	AuthorID uuid.UUID `json:"authorId" validate:"required"`
	Content  string    `json:"content" validate:"required"`
}

func (s *WorkOrderService) AddComment(ctx context.Context, workOrderID uuid.UUID, input AddCommentInput) (*model.Comment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.repo.FindByID(ctx, workOrderID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		WorkOrderID: workOrderID,
		AuthorID:    input.AuthorID,
		Content:     input.Content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}

// notifyAssignment sends the assignment email without blocking or failing
// the request.
func (s *WorkOrderService) notifyAssignment(ctx context.Context, wo *model.WorkOrder) {
	if s.email == nil || !s.email.Enabled() || wo.AssignedTo == nil || wo.AssignedTo.Email == "" {
		return
	}

	data := mailer.AssignmentTemplateData{
		AssigneeName:    wo.AssignedTo.Name,
		WorkOrderNumber: wo.WorkOrderNumber,
		Title:           wo.Title,
		Priority:        string(wo.Priority),
	}
	if data.AssigneeName == "" {
		data.AssigneeName = wo.AssignedTo.Email
	}
	if wo.Asset != nil {
		data.AssetName = wo.Asset.Name
	}
	if wo.DueDate != nil {
		data.DueDate = wo.DueDate.Format("2006-01-02")
	}

	to := wo.AssignedTo.Email
	go func() {
		if err := mailer.SendWorkOrderAssigned(s.email, to, data); err != nil {
			slog.Error("failed to send assignment notification",
				"workOrderNumber", wo.WorkOrderNumber,
				"to", to,
				"error", err,
			)
		}
	}()
}
