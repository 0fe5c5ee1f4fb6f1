package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/inkhaus/backoffice-api/internal/auth"
	"github.com/inkhaus/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type ArtworkHandler struct {
	artworkService *service.ArtworkService
	maxUploadMB    int64
	logger         *zap.Logger
}

func NewArtworkHandler(artworkService *service.ArtworkService, maxUploadMB int64, logger *zap.Logger) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
		maxUploadMB:    maxUploadMB,
		logger:         logger,
	}
}

// Upload godoc
// @Summary Upload artwork
// @Description Attach a print-ready artwork file to an order
// @Tags Artwork
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.ArtworkFileDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/artwork [post]
func (h *ArtworkHandler) Upload(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	uploadedBy := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		uploadedBy = userCtx.DisplayName
	}

	dto, err := h.artworkService.Upload(r.Context(), orderID, header.Filename, header.Header.Get("Content-Type"), file, uploadedBy)
	if err != nil {
		respondServiceError(w, h.logger, err, "upload artwork")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// List godoc
// @Summary List artwork files
// @Tags Artwork
// @Produce json
// @Param id path string true "Order ID" format(uuid)
// @Success 200 {array} domain.ArtworkFileDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/artwork [get]
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	files, err := h.artworkService.List(r.Context(), orderID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list artwork")
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// Download godoc
// @Summary Download artwork
// @Tags Artwork
// @Produce application/octet-stream
// @Param id path string true "Order ID" format(uuid)
// @Param fileId path string true "File ID" format(uuid)
// @Success 200
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/artwork/{fileId}/download [get]
func (h *ArtworkHandler) Download(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	fileID, ok := uuidParam(w, r, "fileId")
	if !ok {
		return
	}

	file, reader, err := h.artworkService.Download(r.Context(), orderID, fileID)
	if err != nil {
		respondServiceError(w, h.logger, err, "download artwork")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream file",
			zap.String("file_id", fileID.String()),
			zap.Error(err),
		)
	}
}

// Delete godoc
// @Summary Delete artwork
// @Tags Artwork
// @Param id path string true "Order ID" format(uuid)
// @Param fileId path string true "File ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/artwork/{fileId} [delete]
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	fileID, ok := uuidParam(w, r, "fileId")
	if !ok {
		return
	}

	if err := h.artworkService.Delete(r.Context(), orderID, fileID); err != nil {
		respondServiceError(w, h.logger, err, "delete artwork")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
