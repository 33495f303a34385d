package handler

import (
	"net/http"
	"strconv"

	"github.com/sharevid/video-share-api/internal/payload"
	"github.com/sharevid/video-share-api/internal/usecase"
)

// GetUserDetailsHandler handles GET /api/v1/user/details.
func (s *Server) GetUserDetailsHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())

	user, err := s.userUsecase.GetDetails(r.Context(), current.ID.Hex())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "User details fetched successfully", map[string]any{
		"user": payload.NewUserResponse(user),
	})
}

// UpdateProfileHandler handles POST /api/v1/user/update-profile.
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())

	var req payload.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	user, err := s.userUsecase.UpdateProfile(r.Context(), current.ID.Hex(), usecase.UpdateProfileParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Successfully updated your details", map[string]any{
		"user": payload.NewUserResponse(user),
	})
}

// GetLatestVideosHandler handles GET /api/v1/user/get-latest-videos.
func (s *Server) GetLatestVideosHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())
	page, limit := pageParams(r, usecase.DefaultMinePageSize)

	views, meta, err := s.videoUsecase.ListMine(r.Context(), current.ID.Hex(), page, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Fetched videos successfully", map[string]any{
		"videos": videoResponses(views),
		"pagination": payload.Pagination{
			CurrentPage: meta.CurrentPage,
			TotalPages:  meta.TotalPages,
			TotalVideos: meta.TotalVideos,
		},
	})
}

// pageParams parses the ?page and ?limit query parameters, falling back to
// page 1 and the given default page size.
func pageParams(r *http.Request, defaultLimit int64) (int64, int64) {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return page, limit
}

// videoResponses maps resolved video views to their public representation.
func videoResponses(views []usecase.VideoView) []payload.VideoResponse {
	responses := make([]payload.VideoResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, payload.NewVideoResponse(view.Video, view.UploaderEmail))
	}

	return responses
}
