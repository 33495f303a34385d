package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sharevid/video-share-api/internal/payload"
	"github.com/sharevid/video-share-api/internal/usecase"
)

const maxUploadMemory = 32 << 20 // form fields kept in memory; files spill to disk

// UploadHandler handles POST /api/v1/aws/upload (multipart).
func (s *Server) UploadHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respond(w, http.StatusBadRequest, false, "Invalid multipart form", nil)
		return
	}

	video, closeVideo, err := formFile(r, usecase.FieldVideo)
	if err != nil {
		s.respondError(w, usecase.ErrFileRequired)
		return
	}
	defer closeVideo()

	thumbnail, closeThumbnail, err := formFile(r, usecase.FieldThumbnail)
	if err == nil {
		defer closeThumbnail()
	}

	isPrivate, _ := strconv.ParseBool(r.FormValue("isPrivate"))

	view, err := s.videoUsecase.Upload(r.Context(), usecase.UploadParams{
		OwnerID:     current.ID.Hex(),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		IsPrivate:   isPrivate,
		Video:       video,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Video uploaded successfully", map[string]any{
		"video": payload.NewVideoResponse(view.Video, view.UploaderEmail),
	})
}

// UpdateVideoHandler handles PUT /api/v1/aws/video/update/{videoId}. The body
// is either a multipart form (optionally replacing the binary/thumbnail) or a
// JSON partial update.
func (s *Server) UpdateVideoHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())
	videoID := chi.URLParam(r, "videoId")

	var params usecase.UpdateParams

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			s.respond(w, http.StatusBadRequest, false, "Invalid multipart form", nil)
			return
		}

		if values, ok := r.MultipartForm.Value["title"]; ok && len(values) > 0 {
			params.Title = &values[0]
		}
		if values, ok := r.MultipartForm.Value["description"]; ok && len(values) > 0 {
			params.Description = &values[0]
		}
		if values, ok := r.MultipartForm.Value["isPrivate"]; ok && len(values) > 0 {
			isPrivate, _ := strconv.ParseBool(values[0])
			params.IsPrivate = &isPrivate
		}

		if video, closeVideo, err := formFile(r, usecase.FieldVideo); err == nil {
			defer closeVideo()
			params.Video = video
		}
		if thumbnail, closeThumbnail, err := formFile(r, usecase.FieldThumbnail); err == nil {
			defer closeThumbnail()
			params.Thumbnail = thumbnail
		}
	} else {
		var req payload.UpdateVideoRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		params.Title = req.Title
		params.Description = req.Description
		params.IsPrivate = req.IsPrivate
	}

	view, err := s.videoUsecase.Update(r.Context(), videoID, current.ID.Hex(), params)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Video updated successfully", map[string]any{
		"video": payload.NewVideoResponse(view.Video, view.UploaderEmail),
	})
}

// DeleteVideoHandler handles DELETE /api/v1/aws/video/delete/{videoId}.
func (s *Server) DeleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	current := CurrentUser(r.Context())
	videoID := chi.URLParam(r, "videoId")

	if err := s.videoUsecase.Delete(r.Context(), videoID, current.ID.Hex()); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Video deleted successfully", nil)
}

// FetchLatestVideosHandler handles GET /api/v1/fetch-latest-6-videos.
func (s *Server) FetchLatestVideosHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, usecase.DefaultPublicPageSize)

	views, err := s.videoUsecase.ListPublic(r.Context(), page, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Fetched videos successfully", map[string]any{
		"videos": videoResponses(views),
	})
}

// GetVideoHandler handles GET /api/v1/video/{videoId}. The route is public,
// but private video metadata is only returned to the owner.
func (s *Server) GetVideoHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")

	requesterID := ""
	if current := CurrentUser(r.Context()); current != nil {
		requesterID = current.ID.Hex()
	}

	view, err := s.videoUsecase.Get(r.Context(), videoID, requesterID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Fetched video successfully", map[string]any{
		"video": payload.NewVideoResponse(view.Video, view.UploaderEmail),
	})
}

// SearchVideosHandler handles GET /api/v1/video/search?q=.
func (s *Server) SearchVideosHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.respond(w, http.StatusBadRequest, false, "A search query is required", nil)
		return
	}

	views, err := s.videoUsecase.Search(r.Context(), query)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Fetched videos successfully", map[string]any{
		"videos": videoResponses(views),
	})
}

// DownloadVideoHandler handles GET /api/v1/video/download/{videoId}. The
// optional ?userId= identifies the requester for download counting.
func (s *Server) DownloadVideoHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	requesterID := r.URL.Query().Get("userId")

	result, err := s.videoUsecase.Download(r.Context(), videoID, requesterID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}

	// Headers are already flushed once copying starts; a mid-stream storage
	// error can only abort the connection, not change the status.
	if _, err := io.Copy(w, result.Body); err != nil {
		s.logger.Error().Err(err).Str("video_id", videoID).Msg("download stream interrupted")
	}
}

// HealthCheckHandler handles GET /health.
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, true, "ok", nil)
}

// formFile extracts a single multipart file for the given field. The second
// return value closes the underlying file and must be deferred by the caller.
func formFile(r *http.Request, field string) (*usecase.FileUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	upload := &usecase.FileUpload{
		Filename:    header.Filename,
		ContentType: fileContentType(header),
		Body:        file,
	}

	return upload, func() { file.Close() }, nil
}

func fileContentType(header *multipart.FileHeader) string {
	if contentType := header.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}
