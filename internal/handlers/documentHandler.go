package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rkampati/carekb/internal/adapter"
	"github.com/rkampati/carekb/internal/adapter/utils"
	"github.com/rkampati/carekb/internal/api"
	"github.com/rkampati/carekb/internal/domain/docModel"
)

// ListDocumentsHandler godoc
// @Summary      List stored documents
// @Description  Returns document metadata, newest first. Optional category and q filters narrow the list.
// @Tags         Documents
// @Produce      json
// @Param        category  query     string  false  "Exact category match"
// @Param        q         query     string  false  "Substring match over title, file name and description"
// @Success      200  {object}  api.DocumentListResponse
// @Failure      503  {object}  api.JobResponse "Document store unavailable"
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		filter := docModel.ListFilter{
			Category: r.URL.Query().Get("category"),
			Query:    r.URL.Query().Get("q"),
		}
		docs, err := handlerInstance.documentStore.ListDocuments(r.Context(), filter)
		if err != nil {
			logRH.Error("List documents failed: ", "err", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "document store unavailable")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
	}
}

// GetDocumentHandler godoc
// @Summary      Get one document
// @Description  Returns the metadata of a single document by ID.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.JobResponse "Document not found"
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		id := utils.GetChiURLParam(r, "id")
		doc, found, err := handlerInstance.documentStore.GetDocument(r.Context(), id)
		if err != nil {
			logRH.Error("Get document failed: ", "err", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, id, "document store unavailable")
			return
		}
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
	}
}

// UpdateDocumentHandler godoc
// @Summary      Update a document
// @Description  Applies a partial update. Omitted fields keep their value; a full_text update regenerates chunks and description.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Document ID"
// @Param        request  body      api.UpdateDocumentRequest  true  "Fields to change"
// @Success      200  {object}  api.DocumentResponse
// @Failure      400  {object}  api.JobResponse "Invalid request data"
// @Failure      404  {object}  api.JobResponse "Document not found"
// @Router       /documents/{id} [patch]
func UpdateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		id := utils.GetChiURLParam(r, "id")

		var requestData api.UpdateDocumentRequest
		defer func(Body io.ReadCloser) {
			if err := Body.Close(); err != nil {
				logRH.Error("Couldn't close the Update handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
			return
		}
		if requestData.SourceAuthority != nil && !docModel.ValidAuthority(*requestData.SourceAuthority) {
			WriteErrorResponse(w, http.StatusBadRequest, id, "source_authority must be vetted or general")
			return
		}

		patch := docModel.DocumentPatch{
			Title:           requestData.Title,
			Category:        requestData.Category,
			SourceAuthority: requestData.SourceAuthority,
			Description:     requestData.Description,
			FullText:        requestData.FullText,
		}
		doc, found, err := handlerInstance.documentStore.UpdateDocument(r.Context(), id, patch)
		if err != nil {
			logRH.Error("Update document failed: ", "err", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, id, "document store unavailable")
			return
		}
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
	}
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes a document and all its chunks. Deletion is terminal.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.JobResponse "Document not found"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		id := utils.GetChiURLParam(r, "id")
		deleted, err := handlerInstance.documentStore.DeleteDocument(r.Context(), id)
		if err != nil {
			logRH.Error("Delete document failed: ", "err", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, id, "document store unavailable")
			return
		}
		if !deleted {
			WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
