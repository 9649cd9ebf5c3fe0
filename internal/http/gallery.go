package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

type PhotoBatchRequest struct {
	Photos []store.GalleryPhoto `json:"photos"`
}

func (s *Server) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	var req PhotoBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := s.Store.Gallery.AddPhotos(req.Photos)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("GALLERY_PHOTOS_ADD", CurrentUsername(r), "", r.UserAgent())
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Gallery.DeletePhoto(chi.URLParam(r, "id")); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) UploadVideo(w http.ResponseWriter, r *http.Request) {
	var video store.GalleryVideo
	if !decodeBody(w, r, &video) {
		return
	}
	saved, err := s.Store.Gallery.AddVideo(video)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("GALLERY_VIDEO_ADD", CurrentUsername(r), saved.Title, r.UserAgent())
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Gallery.DeleteVideo(chi.URLParam(r, "id")); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) UploadPress(w http.ResponseWriter, r *http.Request) {
	var press store.PressItem
	if !decodeBody(w, r, &press) {
		return
	}
	saved, err := s.Store.Gallery.AddPress(press)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("GALLERY_PRESS_ADD", CurrentUsername(r), saved.Title, r.UserAgent())
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) DeletePress(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Gallery.DeletePress(chi.URLParam(r, "id")); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
