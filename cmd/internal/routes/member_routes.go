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

type MemberService interface {
	ListMembers(ctx context.Context) ([]entity.Member, apierror.ErrorResponse)
	AddMember(ctx context.Context, req *service.MemberRequest) (string, apierror.ErrorResponse)
	UpdateMember(ctx context.Context, id string, req *service.MemberUpdateRequest) apierror.ErrorResponse
	DeleteMember(ctx context.Context, id string) apierror.ErrorResponse
}

type DefaultMemberRoute struct {
	MemberService MemberService
}

func NewMemberDefault(memberService MemberService) *DefaultMemberRoute {
	return &DefaultMemberRoute{MemberService: memberService}
}

func (m *DefaultMemberRoute) GetMembers(c echo.Context) error {
	members, apierr := m.MemberService.ListMembers(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"members": members}
	return c.JSON(http.StatusOK, &resp)
}

func (m *DefaultMemberRoute) CreateMember(c echo.Context) error {
	var req service.MemberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	id, apierr := m.MemberService.AddMember(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Member added"})
}

func (m *DefaultMemberRoute) UpdateMember(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.MemberUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := m.MemberService.UpdateMember(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Member updated"})
}

func (m *DefaultMemberRoute) DeleteMember(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	apierr := m.MemberService.DeleteMember(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Member deleted"})
}
