package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/usecase"
	"github.com/secmon-lab/toolhub/pkg/utils/errutil"
)

type toolResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Kind        string     `json:"kind,omitempty"`
	UsageCount  int64      `json:"usageCount"`
	LastUsed    *time.Time `json:"lastUsed"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LastLogin time.Time `json:"lastLogin"`
	Favorites []string  `json:"favorites"`
}

type dailyUsageResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type toolUsageResponse struct {
	Tool       toolResponse         `json:"tool"`
	DailyUsage []dailyUsageResponse `json:"dailyUsage"`
}

type userActivityResponse struct {
	User          userResponse   `json:"user"`
	FavoriteTools []toolResponse `json:"favoriteTools"`
	RecentlyUsed  []toolResponse `json:"recentlyUsed"`
}

type categoryStatResponse struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	TotalUsage int64   `json:"totalUsage"`
	AvgUsage   float64 `json:"avgUsage"`
}

func toToolResponse(t *model.Tool) toolResponse {
	return toolResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Kind:        t.Kind.String(),
		UsageCount:  t.UsageCount,
		LastUsed:    t.LastUsed,
	}
}

func toToolResponses(toolList []*model.Tool) []toolResponse {
	resp := make([]toolResponse, len(toolList))
	for i, t := range toolList {
		resp[i] = toToolResponse(t)
	}
	return resp
}

func toUserResponse(u *model.User) userResponse {
	favorites := make([]string, len(u.Favorites))
	for i, id := range u.Favorites {
		favorites[i] = id.String()
	}
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		LastLogin: u.LastLogin,
		Favorites: favorites,
	}
}

func (s *Server) listToolsHandler(w http.ResponseWriter, r *http.Request) {
	toolList, err := s.uc.Analytics.ListTools(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(r, w, http.StatusOK, toToolResponses(toolList))
}

func (s *Server) trackUsageHandler(w http.ResponseWriter, r *http.Request) {
	toolID := model.ToolID(chi.URLParam(r, "toolId"))

	if err := s.uc.Usage.TrackUsage(r.Context(), toolID); err != nil {
		s.handleAnalyticsError(w, r, err)
		return
	}
	writeMessage(r, w, http.StatusOK, "Usage tracked")
}

func (s *Server) toolUsageHandler(w http.ResponseWriter, r *http.Request) {
	toolID := model.ToolID(chi.URLParam(r, "toolId"))

	report, err := s.uc.Analytics.ToolUsage(r.Context(), toolID)
	if err != nil {
		s.handleAnalyticsError(w, r, err)
		return
	}

	resp := toolUsageResponse{
		Tool:       toToolResponse(report.Tool),
		DailyUsage: make([]dailyUsageResponse, len(report.DailyUsage)),
	}
	for i, d := range report.DailyUsage {
		resp.DailyUsage[i] = dailyUsageResponse{Date: d.Date, Count: d.Count}
	}
	writeJSON(r, w, http.StatusOK, resp)
}

func (s *Server) userActivityHandler(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(chi.URLParam(r, "userId"))

	activity, err := s.uc.Analytics.UserActivity(r.Context(), userID)
	if err != nil {
		s.handleAnalyticsError(w, r, err)
		return
	}

	writeJSON(r, w, http.StatusOK, userActivityResponse{
		User:          toUserResponse(activity.User),
		FavoriteTools: toToolResponses(activity.FavoriteTools),
		RecentlyUsed:  toToolResponses(activity.RecentlyUsed),
	})
}

func (s *Server) categoryStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Analytics.CategoryStats(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	resp := make([]categoryStatResponse, len(stats))
	for i, st := range stats {
		resp[i] = categoryStatResponse{
			Category:   st.Category,
			Count:      st.Count,
			TotalUsage: st.TotalUsage,
			AvgUsage:   st.AvgUsage,
		}
	}
	writeJSON(r, w, http.StatusOK, resp)
}

func (s *Server) handleAnalyticsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrToolNotFound):
		writeMessage(r, w, http.StatusNotFound, "Tool not found")
	case errors.Is(err, usecase.ErrUserNotFound):
		writeMessage(r, w, http.StatusNotFound, "User not found")
	default:
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "analytics request failed", goerr.V("path", r.URL.Path)), http.StatusInternalServerError)
	}
}
