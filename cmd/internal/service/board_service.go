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

type MemoStore interface {
	Add(ctx context.Context, m entity.BoardMemo) (string, error)
	Update(ctx context.Context, id string, patch store.MemoPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.BoardMemo, error)
}

type MemoRequest struct {
	Content  string `json:"content" validate:"required,max=1000"`
	MemberID string `json:"memberId" validate:"required"`
}

type MemoUpdateRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=1000"`
}

type DefaultBoardService struct {
	MemoStore MemoStore
	Validate  *validator.Validate
}

func NewBoardService(memoStore MemoStore, validate *validator.Validate) *DefaultBoardService {
	return &DefaultBoardService{MemoStore: memoStore, Validate: validate}
}

func (b *DefaultBoardService) ListMemos(ctx context.Context) ([]entity.BoardMemo, apierror.ErrorResponse) {
	memos, err := b.MemoStore.List(ctx)
	if err != nil {
		log.Errorf("failed to list board memos: %v", err)
		return nil, apierror.InternalServerError
	}
	return memos, nil
}

func (b *DefaultBoardService) AddMemo(ctx context.Context, req *MemoRequest) (string, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return "", apierror.FromValidationError(err)
	}

	id, err := b.MemoStore.Add(ctx, entity.BoardMemo{Content: req.Content, MemberID: req.MemberID})
	if err != nil {
		log.Errorf("failed to add board memo: %v", err)
		return "", apierror.NewWriteFailure("add memo", err)
	}
	return id, nil
}

func (b *DefaultBoardService) UpdateMemo(ctx context.Context, id string, req *MemoUpdateRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := b.MemoStore.Update(ctx, id, store.MemoPatch{Content: req.Content}); err != nil {
		log.Errorf("failed to update board memo %s: %v", id, err)
		return apierror.NewWriteFailure("update memo", err)
	}
	return nil
}

func (b *DefaultBoardService) DeleteMemo(ctx context.Context, id string) apierror.ErrorResponse {
	if err := b.MemoStore.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete board memo %s: %v", id, err)
		return apierror.NewWriteFailure("delete memo", err)
	}
	return nil
}
