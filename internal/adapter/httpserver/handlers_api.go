package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/salespulse/internal/domain"
	apperrors "github.com/pscheid92/salespulse/internal/platform/errors"
)

// pageMeta describes the returned window of a row sequence.
type pageMeta struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
}

type usersResponse struct {
	Users []domain.User        `json:"users"`
	State domain.ResourceState `json:"state"`
}

type summaryResponse struct {
	UserID   int                        `json:"userId"`
	Loading  bool                       `json:"loading"`
	Failures map[domain.Resource]string `json:"failures,omitempty"`
	Accounts []domain.Account           `json:"accounts"`
	Rows     []domain.StatsRow          `json:"rows"`
	Page     pageMeta                   `json:"page"`
}

type listingResponse struct {
	UserID   int                        `json:"userId"`
	CallType string                     `json:"callType"`
	Loading  bool                       `json:"loading"`
	Failures map[domain.Resource]string `json:"failures,omitempty"`
	Rows     []domain.CallRow           `json:"rows"`
	Page     pageMeta                   `json:"page"`
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, state := s.app.Users()
	if users == nil {
		users = []domain.User{}
	}

	if err := c.JSON(http.StatusOK, usersResponse{Users: users, State: state}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTerritorySummary(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	page, size, err := s.parsePaging(c)
	if err != nil {
		return err
	}

	report := s.app.TerritorySummary(userID, page, size)

	resp := summaryResponse{
		UserID:   userID,
		Loading:  report.Loading,
		Failures: report.Failures,
		Accounts: report.Accounts,
		Rows:     report.Page.Rows,
		Page: pageMeta{
			Number:     report.PageNumber,
			Size:       size,
			TotalPages: report.Page.DisplayTotalPages(),
		},
	}
	if resp.Accounts == nil {
		resp.Accounts = []domain.Account{}
	}
	if resp.Rows == nil {
		resp.Rows = []domain.StatsRow{}
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCallListing(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	page, size, err := s.parsePaging(c)
	if err != nil {
		return err
	}

	callType := c.QueryParam("type")
	if callType == "" {
		callType = domain.CallTypeFilterAll
	}
	if !domain.ValidCallTypeFilter(callType) {
		return apperrors.ValidationError("unknown call type").WithField("type", callType)
	}

	report := s.app.CallListing(userID, callType, page, size)

	resp := listingResponse{
		UserID:   userID,
		CallType: callType,
		Loading:  report.Loading,
		Failures: report.Failures,
		Rows:     report.Page.Rows,
		Page: pageMeta{
			Number:     report.PageNumber,
			Size:       size,
			TotalPages: report.Page.DisplayTotalPages(),
		},
	}
	if resp.Rows == nil {
		resp.Rows = []domain.CallRow{}
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleRefresh triggers an on-demand refetch of every collection. Fetch
// failures are data, not an HTTP error: the response reports every
// resource's state so the client can name the failing resource while the
// healthy ones keep rendering.
func (s *Server) handleRefresh(c echo.Context) error {
	_ = s.app.RefreshAll(c.Request().Context())

	if err := c.JSON(http.StatusOK, map[string]any{"resources": s.app.ResourceStates()}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseUserID(c echo.Context) (int, error) {
	raw := c.Param("userID")
	userID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationError("userID must be an integer").WithField("userID", raw)
	}
	return userID, nil
}

// parsePaging reads page/size query parameters. An unknown user or an
// out-of-range page is not an error, so only non-numeric input rejects;
// the page number is clamped downstream.
func (s *Server) parsePaging(c echo.Context) (page, size int, err error) {
	page = 1
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.ValidationError("page must be an integer").WithField("page", raw)
		}
	}

	size = s.config.DefaultPageSize
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.ValidationError("size must be an integer").WithField("size", raw)
		}
	}
	if size < 1 {
		return 0, 0, apperrors.ValidationError("size must be positive").WithField("size", size)
	}
	if size > s.config.MaxPageSize {
		size = s.config.MaxPageSize
	}

	return page, size, nil
}
