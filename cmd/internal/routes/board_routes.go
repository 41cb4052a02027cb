package routes

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/service"
	"famcal/cmd/internal/utils/apierror"
)

type BoardService interface {
	ListMemos(ctx context.Context) ([]entity.BoardMemo, apierror.ErrorResponse)
	AddMemo(ctx context.Context, req *service.MemoRequest) (string, apierror.ErrorResponse)
	UpdateMemo(ctx context.Context, id string, req *service.MemoUpdateRequest) apierror.ErrorResponse
	DeleteMemo(ctx context.Context, id string) apierror.ErrorResponse
}

type DefaultBoardRoute struct {
	BoardService BoardService
}

func NewBoardDefault(boardService BoardService) *DefaultBoardRoute {
	return &DefaultBoardRoute{BoardService: boardService}
}

func (b *DefaultBoardRoute) GetMemos(c echo.Context) error {
	memos, apierr := b.BoardService.ListMemos(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"memos": memos}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBoardRoute) CreateMemo(c echo.Context) error {
	var req service.MemoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	id, apierr := b.BoardService.AddMemo(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Memo added"})
}

func (b *DefaultBoardRoute) UpdateMemo(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.MemoUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := b.BoardService.UpdateMemo(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Memo updated"})
}

func (b *DefaultBoardRoute) DeleteMemo(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	apierr := b.BoardService.DeleteMemo(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Memo deleted"})
}
