package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/store"
	"famcal/cmd/internal/utils"
	"famcal/cmd/internal/utils/apierror"
)

type MemberStore interface {
	Add(ctx context.Context, m entity.Member) (string, error)
	Update(ctx context.Context, id string, patch store.MemberPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Member, error)
}

type MemberRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"required,max=32"`
}

type MemberUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=80"`
	Color *string `json:"color" validate:"omitempty,min=1,max=32"`
}

type DefaultMemberService struct {
	MemberStore MemberStore
	Validate    *validator.Validate
}

func NewMemberService(memberStore MemberStore, validate *validator.Validate) *DefaultMemberService {
	return &DefaultMemberService{MemberStore: memberStore, Validate: validate}
}

func (m *DefaultMemberService) ListMembers(ctx context.Context) ([]entity.Member, apierror.ErrorResponse) {
	members, err := m.MemberStore.List(ctx)
	if err != nil {
		log.Errorf("failed to list members: %v", err)
		return nil, apierror.InternalServerError
	}
	return members, nil
}

func (m *DefaultMemberService) AddMember(ctx context.Context, req *MemberRequest) (string, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := m.Validate.Struct(req); err != nil {
		return "", apierror.FromValidationError(err)
	}

	id, err := m.MemberStore.Add(ctx, entity.Member{Name: req.Name, Color: req.Color})
	if err != nil {
		log.Errorf("failed to add member: %v", err)
		return "", apierror.NewWriteFailure("add member", err)
	}
	return id, nil
}

func (m *DefaultMemberService) UpdateMember(ctx context.Context, id string, req *MemberUpdateRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := m.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	patch := store.MemberPatch{Name: req.Name, Color: req.Color}
	if err := m.MemberStore.Update(ctx, id, patch); err != nil {
		log.Errorf("failed to update member %s: %v", id, err)
		return apierror.NewWriteFailure("update member", err)
	}
	return nil
}

// DeleteMember relies on the store to cascade the member's events; the
// facade adds nothing so both backends behave identically.
func (m *DefaultMemberService) DeleteMember(ctx context.Context, id string) apierror.ErrorResponse {
	if err := m.MemberStore.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete member %s: %v", id, err)
		return apierror.NewWriteFailure("delete member", err)
	}
	return nil
}
