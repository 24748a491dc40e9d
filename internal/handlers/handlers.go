// Package handlers provides the HTTP handlers for the document assembly API.
//
// Endpoints cover session management, batch document upload with
// normalization, page selection and rotation, signature upload, merge and
// sign actions, and artifact download. All handlers are designed to be
// used with the chi router; see internal/server/routes.go.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-mergesign/internal/document"
	"go-mergesign/internal/raster"
	"go-mergesign/internal/session"
	"go-mergesign/internal/utils"

	"github.com/go-chi/chi/v5"
)

// maxSignatureUpload caps signature image uploads separately from document
// uploads.
const maxSignatureUpload = 5 * 1024 * 1024

// APIHandler carries the collaborators every endpoint needs. The server
// builds it once at startup.
type APIHandler struct {
	Sessions   *session.Manager
	Normalizer *document.Normalizer
	Merger     *document.Merger
	Stamper    *document.Stamper

	UploadDir string
	OutputDir string
	MaxUpload int64

	// Uncompressed is the server-side default for merge output when the
	// request does not say.
	Uncompressed bool
}

type pageView struct {
	document.Page
	Selected      bool `json:"selected"`
	AddedRotation int  `json:"addedRotation"`
}

type documentView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Format    string     `json:"format"`
	Size      int64      `json:"size"`
	PageCount int        `json:"pageCount"`
	Pages     []pageView `json:"pages"`
}

func viewOf(doc *document.Document) documentView {
	cfgs := doc.Config.Snapshot()
	pages := make([]pageView, len(doc.Pages))
	for i, pg := range doc.Pages {
		pages[i] = pageView{Page: pg, Selected: cfgs[i].Selected, AddedRotation: cfgs[i].Rotation}
	}
	return documentView{
		ID:        doc.ID,
		Name:      doc.Name,
		Format:    string(doc.Format),
		Size:      doc.Size,
		PageCount: doc.PageCount(),
		Pages:     pages,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// statusForError maps the assembly failure taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrCorruptSource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, document.ErrEmbedFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, document.ErrEmptySelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *APIHandler) getSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := h.Sessions.Get(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new document assembly session and returns a session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Create()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"sessionId": "%s"}`, sess.ID)
}

// UploadDocuments godoc
// @Summary      Upload source documents
// @Description  Uploads a batch of source files (PDF, PNG, JPEG, DOCX, XLSX). The whole batch is normalized concurrently and either every file joins the session or none does.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        documents  formData  file    true  "Source files (repeatable)"
// @Success      200  {object}  map[string]interface{}  "{ documents: [...] }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Failure      415  {string}  string  "Unsupported source format"
// @Failure      422  {string}  string  "Corrupt source"
// @Router       /api/sessions/{sessionID}/documents [post]
func (h *APIHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		http.Error(w, "Upload too large", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		http.Error(w, "No documents in request", http.StatusBadRequest)
		return
	}

	sources := make([]document.SourceFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, "Error retrieving file", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusBadRequest)
			return
		}
		sources = append(sources, document.SourceFile{
			Name:     utils.SanitizeFilename(fh.Filename),
			Declared: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	docs, err := h.Normalizer.NormalizeAll(r.Context(), sources)
	if err != nil {
		if document.Aborted(err) {
			return
		}
		log.Printf("Error normalizing batch: %v", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if err := sess.CommitDocuments(h.UploadDir, docs); err != nil {
		log.Printf("Error committing batch: %v", err)
		http.Error(w, "Failed to store documents", http.StatusInternalServerError)
		return
	}

	views := make([]documentView, len(docs))
	for i, doc := range docs {
		views[i] = viewOf(doc)
	}
	writeJSON(w, map[string]any{"documents": views})
}

// ListDocuments godoc
// @Summary      List session documents
// @Description  Returns the working set in its current order, including per-page size, selection and rotation
// @Tags         documents
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  map[string]interface{}  "{ documents: [...] }"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/documents [get]
func (h *APIHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	docs := sess.Documents()
	views := make([]documentView, len(docs))
	for i, doc := range docs {
		views[i] = viewOf(doc)
	}
	writeJSON(w, map[string]any{"documents": views})
}

// DeleteDocument godoc
// @Summary      Remove a document
// @Description  Removes a document from the session and deletes its stored content
// @Tags         documents
// @Produce      json
// @Param        sessionID   path  string  true  "Session ID"
// @Param        documentID  path  string  true  "Document ID"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      404  {string}  string  "Session or document not found"
// @Router       /api/sessions/{sessionID}/documents/{documentID} [delete]
func (h *APIHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if !sess.RemoveDocument(chi.URLParam(r, "documentID")) {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success": true}`)
}

// UpdateOrder godoc
// @Summary      Set document order
// @Description  Rearranges the working set. The new order must name every current document exactly once.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        order      body  object  true  "{ documents: [string] }"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/documents/order [put]
func (h *APIHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Documents []string `json:"documents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid order data", http.StatusBadRequest)
		return
	}
	if err := sess.Reorder(req.Documents); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success": true}`)
}

// PatchPage godoc
// @Summary      Update one page's configuration
// @Description  Partially updates a page: selection, absolute rotation, or a relative quarter turn via rotate:true. Omitted fields keep their value.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        sessionID   path  string  true  "Session ID"
// @Param        documentID  path  string  true  "Document ID"
// @Param        pageIndex   path  int     true  "0-based page index"
// @Param        patch       body  object  true  "{ selected?: bool, rotation?: int, rotate?: bool }"
// @Success      200  {object}  map[string]interface{}  "updated page"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session or document not found"
// @Router       /api/sessions/{sessionID}/documents/{documentID}/pages/{pageIndex} [patch]
func (h *APIHandler) PatchPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	doc, ok := sess.Document(chi.URLParam(r, "documentID"))
	if !ok {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "pageIndex"))
	if err != nil || idx < 0 || idx >= doc.PageCount() {
		http.Error(w, "Page index out of range", http.StatusBadRequest)
		return
	}

	var req struct {
		Selected *bool `json:"selected"`
		Rotation *int  `json:"rotation"`
		Rotate   bool  `json:"rotate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid page patch", http.StatusBadRequest)
		return
	}
	if req.Selected == nil && req.Rotation == nil && !req.Rotate {
		http.Error(w, "Empty page patch", http.StatusBadRequest)
		return
	}

	var cfg document.PageConfig
	if req.Selected != nil || req.Rotation != nil {
		cfg = doc.Config.Set(idx, document.PageConfigPatch{Selected: req.Selected, Rotation: req.Rotation})
	}
	if req.Rotate {
		cfg = doc.Config.Rotate(idx)
	}

	writeJSON(w, pageView{Page: doc.Pages[idx], Selected: cfg.Selected, AddedRotation: cfg.Rotation})
}

// SetSelection godoc
// @Summary      Select or deselect all pages
// @Description  Applies one selection state to every page of the document
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        sessionID   path  string  true  "Session ID"
// @Param        documentID  path  string  true  "Document ID"
// @Param        selection   body  object  true  "{ selected: bool }"
// @Success      200  {object}  map[string]bool  "{ success: true }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session or document not found"
// @Router       /api/sessions/{sessionID}/documents/{documentID}/pages/selection [put]
func (h *APIHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	doc, ok := sess.Document(chi.URLParam(r, "documentID"))
	if !ok {
		http.Error(w, "Document not found", http.StatusNotFound)
		return
	}
	var req struct {
		Selected *bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Selected == nil {
		http.Error(w, "Invalid selection data", http.StatusBadRequest)
		return
	}
	if *req.Selected {
		doc.Config.SelectAll()
	} else {
		doc.Config.DeselectAll()
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success": true}`)
}

// UploadSignature godoc
// @Summary      Upload a signature image
// @Description  Uploads the signature image (PNG/JPEG) used by the sign action. Replaces any previous one.
// @Tags         signature
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        signature  formData  file    true  "Signature image file (PNG/JPEG)"
// @Success      200  {object}  map[string]interface{}  "{ filename: string, width: int, height: int }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Failure      415  {string}  string  "Not a supported image format"
// @Failure      422  {string}  string  "Image cannot be decoded"
// @Router       /api/sessions/{sessionID}/signature [post]
func (h *APIHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSignatureUpload)
	if err := r.ParseMultipartForm(maxSignatureUpload); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, fh, err := r.FormFile("signature")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	format, err := document.DetectFormat(fh.Header.Get("Content-Type"), fh.Filename)
	if err != nil || !format.IsImage() {
		http.Error(w, "Only PNG and JPEG signature images are allowed", http.StatusUnsupportedMediaType)
		return
	}
	info, err := raster.Sniff(data)
	if err != nil {
		http.Error(w, "Signature image cannot be decoded", http.StatusUnprocessableEntity)
		return
	}
	if document.Format(info.Format) != format {
		http.Error(w, "File content doesn't match its declared type", http.StatusBadRequest)
		return
	}

	name := utils.SanitizeFilename(fh.Filename)
	stored := fmt.Sprintf("sig-%s-%s", utils.GenerateUUID(), name)
	path := filepath.Join(h.UploadDir, stored)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("Error storing signature: %v", err)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	sess.SetSignature(&document.SignatureAsset{
		Name:   name,
		Format: format,
		Width:  info.Width,
		Height: info.Height,
		Path:   path,
	})

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"filename": "%s", "width": %d, "height": %d}`, name, info.Width, info.Height)
}

// MergeDocuments godoc
// @Summary      Merge the working set
// @Description  Concatenates every selected page of every document, in document order, applying per-page rotation, and returns a download URL
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true   "Session ID"
// @Param        request    body  object  false  "{ filename?: string, nameFrom?: string, compress?: bool }"
// @Success      200  {object}  map[string]string  "{ downloadUrl: string, filename: string }"
// @Failure      400  {string}  string  "Nothing to merge"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "Another action is in progress"
// @Router       /api/sessions/{sessionID}/actions/merge [post]
func (h *APIHandler) MergeDocuments(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Filename string `json:"filename"`
		NameFrom string `json:"nameFrom"`
		Compress *bool  `json:"compress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := sess.BeginAction("merge"); err != nil {
		http.Error(w, "Another action is in progress", http.StatusConflict)
		return
	}
	defer sess.EndAction()

	docs := sess.Documents()
	if len(docs) == 0 {
		http.Error(w, "No documents to merge", http.StatusBadRequest)
		return
	}

	fromName := ""
	if req.NameFrom != "" {
		doc, ok := sess.Document(req.NameFrom)
		if !ok {
			http.Error(w, "Unknown document in nameFrom", http.StatusBadRequest)
			return
		}
		fromName = doc.Name
	}
	compress := !h.Uncompressed
	if req.Compress != nil {
		compress = *req.Compress
	}

	artifact, err := h.Merger.Merge(r.Context(), document.MergeSpec{
		Documents:  docs,
		OutputName: document.ResolveMergeName(req.Filename, fromName),
		Compress:   compress,
	})
	if err != nil {
		if document.Aborted(err) {
			return
		}
		log.Printf("Error merging documents: %v", err)
		http.Error(w, "Failed to merge documents", statusForError(err))
		return
	}

	h.deliver(w, sessionID, sess, artifact)
}

// SignDocuments godoc
// @Summary      Stamp the signature onto documents
// @Description  Draws the uploaded signature image at the committed placement on the resolved pages of each target document. One target yields a signed PDF, several a zip archive.
// @Tags         actions
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Param        request    body  object  true  "{ documents?: [string], placement: { mode, x?, y?, scale?, corner?, margin?, pages? } }"
// @Success      200  {object}  map[string]string  "{ downloadUrl: string, filename: string }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session or document not found"
// @Failure      409  {string}  string  "Another action is in progress"
// @Failure      422  {string}  string  "Signature cannot be embedded"
// @Router       /api/sessions/{sessionID}/actions/sign [post]
func (h *APIHandler) SignDocuments(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Documents []string `json:"documents"`
		Placement struct {
			Mode   string  `json:"mode"`
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
			Scale  float64 `json:"scale"`
			Corner string  `json:"corner"`
			Margin float64 `json:"margin"`
			Pages  string  `json:"pages"`
		} `json:"placement"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	asset := sess.Signature()
	if asset == nil {
		http.Error(w, "No signature uploaded", http.StatusBadRequest)
		return
	}

	var targets []*document.Document
	if len(req.Documents) == 0 {
		targets = sess.Documents()
	} else {
		for _, id := range req.Documents {
			doc, ok := sess.Document(id)
			if !ok {
				http.Error(w, "Document not found", http.StatusNotFound)
				return
			}
			targets = append(targets, doc)
		}
	}
	if len(targets) == 0 {
		http.Error(w, "No documents to sign", http.StatusBadRequest)
		return
	}

	rule, err := document.ParseTargetRule(req.Placement.Pages)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	placement := document.Placement{Scale: req.Placement.Scale, Pages: rule}
	switch req.Placement.Mode {
	case "corner":
		corner, err := document.ParseCorner(req.Placement.Corner)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		placement.Mode = document.PlacementCorner
		placement.Corner = corner
		placement.Margin = req.Placement.Margin
	case "", "interactive":
		if req.Placement.X < 0 || req.Placement.X > 1 || req.Placement.Y < 0 || req.Placement.Y > 1 {
			http.Error(w, "Position out of range", http.StatusBadRequest)
			return
		}
		placement.Mode = document.PlacementInteractive
		placement.FX = req.Placement.X
		placement.FY = req.Placement.Y
	default:
		http.Error(w, "Unknown placement mode", http.StatusBadRequest)
		return
	}

	if err := sess.BeginAction("sign"); err != nil {
		http.Error(w, "Another action is in progress", http.StatusConflict)
		return
	}
	defer sess.EndAction()

	artifact, err := h.Stamper.Stamp(r.Context(), document.StampSpec{
		Documents: targets,
		Asset:     asset,
		Placement: placement,
	})
	if err != nil {
		if document.Aborted(err) {
			return
		}
		log.Printf("Error signing documents: %v", err)
		http.Error(w, "Failed to sign documents", statusForError(err))
		return
	}

	h.deliver(w, sessionID, sess, artifact)
}

// deliver persists an artifact under the output directory, records it on
// the session and answers with its download URL.
func (h *APIHandler) deliver(w http.ResponseWriter, sessionID string, sess *session.Session, artifact *document.Artifact) {
	ext := document.PDFExtension
	if artifact.MIME == document.ZipMediaType {
		ext = ".zip"
	}
	stored := utils.GenerateUUID() + ext
	path := filepath.Join(h.OutputDir, stored)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		log.Printf("Error storing artifact: %v", err)
		http.Error(w, "Failed to store output", http.StatusInternalServerError)
		return
	}
	sess.SetOutput(path, artifact.Name, artifact.MIME)

	downloadURL := fmt.Sprintf("/api/sessions/%s/files/%s", sessionID, stored)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"downloadUrl": "%s", "filename": "%s"}`, downloadURL, artifact.Name)
}

// DownloadFile godoc
// @Summary      Download the produced artifact
// @Description  Serves the last merge or sign output with its suggested filename. The artifact is removed after the download; the working set survives.
// @Tags         files
// @Produce      application/pdf
// @Param        sessionID  path  string  true  "Session ID"
// @Param        filename   path  string  true  "Stored artifact filename"
// @Success      200  {file}    file    "artifact download"
// @Failure      403  {string}  string  "Unauthorized access to file"
// @Failure      404  {string}  string  "Session or file not found"
// @Router       /api/sessions/{sessionID}/files/{filename} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	output, ok := sess.Output()
	if !ok {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	requested := filepath.Join(h.OutputDir, chi.URLParam(r, "filename"))
	if requested != output.Path {
		http.Error(w, "Unauthorized access to file", http.StatusForbidden)
		return
	}
	if _, err := os.Stat(requested); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Name))
	w.Header().Set("Content-Type", output.MIME)
	http.ServeFile(w, r, requested)

	go func() {
		time.Sleep(1 * time.Second)
		sess.ClearOutput()
	}()
}
