package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famcal/cmd/internal/config"
	"famcal/cmd/internal/routes"
	"famcal/cmd/internal/service"
	"famcal/cmd/internal/store/memstore"
)

type fixture struct {
	e       *echo.Echo
	members *routes.DefaultMemberRoute
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := memstore.New()
	validate := validator.New()

	memberRoutes := routes.NewMemberDefault(service.NewMemberService(backend.Members(), validate))
	eventRoutes := routes.NewEventDefault(service.NewEventService(backend.Events(), validate))
	boardRoutes := routes.NewBoardDefault(service.NewBoardService(backend.Memos(), validate))

	e := echo.New()
	e.GET("/api/members", memberRoutes.GetMembers)
	e.POST("/api/members", memberRoutes.CreateMember)
	e.PATCH("/api/members/:id", memberRoutes.UpdateMember)
	e.DELETE("/api/members/:id", memberRoutes.DeleteMember)
	e.GET("/api/events", eventRoutes.GetEvents)
	e.POST("/api/events", eventRoutes.CreateEvent)
	e.GET("/api/board", boardRoutes.GetMemos)
	e.POST("/api/board", boardRoutes.CreateMemo)

	return &fixture{e: e, members: memberRoutes}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListMembers(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/members", `{"name":"Taro","color":"#10B981"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Member added", created.Message)

	rec = f.do(http.MethodGet, "/api/members", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Members []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Color string `json:"color"`
		} `json:"members"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Members, 1)
	assert.Equal(t, created.ID, listed.Members[0].ID)
	assert.Equal(t, "Taro", listed.Members[0].Name)
}

func TestCreateMemberValidationFailure(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/members", `{"color":"#10B981"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestCreateMemberMalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/members", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventDateFilter(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/events",
		`{"title":"Practice","date":"2025-06-01","startTime":"16:00","endTime":"18:00","memberId":"m1","reminder":true,"reminderMinutes":60}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = f.do(http.MethodPost, "/api/events",
		`{"title":"Lesson","date":"2025-06-02","startTime":"15:00","endTime":"16:00","memberId":"m1","reminder":false,"reminderMinutes":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodGet, "/api/events?date=2025-06-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Events []struct {
			Title string `json:"title"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Events, 1)
	assert.Equal(t, "Practice", listed.Events[0].Title)
}

func TestUpdateBlankIDParam(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("   ")

	require.NoError(t, f.members.UpdateMember(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardMemoRoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/board", `{"content":"buy milk","memberId":"m1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "buy milk")
	assert.Contains(t, rec.Body.String(), "createdAt")
}

func TestStatusReportsDemoMode(t *testing.T) {
	statusRoutes := routes.NewStatusDefault(config.Config{})

	e := echo.New()
	e.GET("/api/status", statusRoutes.GetStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Remote bool            `json:"remote"`
		Config map[string]bool `json:"config"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Remote)
	assert.False(t, status.Config["apiKey"])
	assert.False(t, status.Config["projectId"])
}

func TestStatusReportsRemoteMode(t *testing.T) {
	statusRoutes := routes.NewStatusDefault(config.Config{APIKey: "k", ProjectID: "p"})

	e := echo.New()
	e.GET("/api/status", statusRoutes.GetStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var status struct {
		Remote bool `json:"remote"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Remote)
}
