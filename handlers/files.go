package handlers

import (
	"net/http"
	"strconv"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// FileHandler, dosya yükleme/indirme/listeleme endpoint'leri.
type FileHandler struct {
	fileService     services.FileService
	activityService services.ActivityService
	maxUploadSize   int64
}

// NewFileHandler, constructor.
func NewFileHandler(fileService services.FileService, activityService services.ActivityService, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		fileService:     fileService,
		activityService: activityService,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload godoc
// POST /api/files (admin)
// multipart/form-data, alan adı: "file"
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	// MaxBytesReader: body'yi limitle — dev dosya belleği şişirmesin
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	req := models.UploadRequest{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
	}

	// Yükleyen kimliği email'dir — koleksiyonların doğal anahtarı
	record, err := h.fileService.Upload(r.Context(), &req, file, claims.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, record)
}

// List godoc
// GET /api/files?category=apk|image|document|other&search=...
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	category := models.FileCategory(r.URL.Query().Get("category"))
	search := r.URL.Query().Get("search")

	files := h.fileService.List(r.Context(), "")
	filtered := services.FilterFiles(files, search, category)

	pkg.JSON(w, http.StatusOK, filtered)
}

// Download godoc
// GET /api/files/{id}/download
// Admin olmayan kullanıcının erişimi aktiviteye işlenir.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	record, err := h.fileService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	claims := CurrentUser(r)
	if claims != nil && !claims.IsAdmin && claims.Subject != "" {
		// Aktivite kaydındaki bir hata indirmeyi bloke etmez
		_, _ = h.activityService.RecordFileAccess(r.Context(), claims.Subject, record.ID)
	}

	// Content-Type'ı http.ServeFile dosya uzantısından çıkarır —
	// record.Type bir kategori etiketi, MIME type değil.
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(record.Name))
	http.ServeFile(w, r, h.fileService.Path(record))
}

// Delete godoc
// DELETE /api/files/{id} (admin)
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}
