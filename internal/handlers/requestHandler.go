package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkampati/carekb/internal/adapter"
	"github.com/rkampati/carekb/internal/adapter/utils"
	"github.com/rkampati/carekb/internal/api"
	"github.com/rkampati/carekb/internal/config"
	"github.com/rkampati/carekb/internal/domain/docModel"
	"github.com/rkampati/carekb/internal/search"
	"github.com/rkampati/carekb/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id              string
	traceId         string
	documentName    string
	fileName        string
	filePath        string
	category        string
	sourceAuthority string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostIngestHandler handles the uploading of PDF, DOCX, markdown or text documents.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name     formData  string  true   "The display name of the document"
// @Param        category          formData  string  false  "Document category, e.g. feeding or sleep"
// @Param        source_authority  formData  string  false  "vetted or general"
// @Param        document          formData  file    true   "The file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		//process request
		docName := r.FormValue("document_name")
		if docName == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
			return
		}

		authority := r.FormValue("source_authority")
		if authority != "" && !docModel.ValidAuthority(authority) {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "source_authority must be vetted or general")
			return
		}

		//get the document name the user uploads
		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
			return
		}

		newJob := newJobData{
			id:              utils.GetNewUUID(),
			traceId:         r.Context().Value(config.TRACE_ID_KEY).(string),
			documentName:    docName,
			fileName:        fileMetadata.Filename,
			filePath:        tempFilePath,
			category:        r.FormValue("category"),
			sourceAuthority: authority,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// QueryHandler godoc
// @Summary      Retrieve knowledge for a chat query
// @Description  Scores stored chunks against the query and returns ranked results plus an assembled context block.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Query text and optional result limits"
// @Success      200      {object}  api.QueryResponse "Ranked results and context"
// @Failure      400      {object}  api.JobResponse   "Invalid request data"
// @Failure      503      {object}  api.JobResponse   "Document store unavailable"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.QueryRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Query handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Query) == "" {
			logRH.Warn("Bad Query Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "query is required")
			return
		}

		results, classification, err := handlerInstance.searchService.Retrieve(
			request.Context(), requestData.Query, requestData.MaxResults, requestData.MaxContextChars)
		if err != nil {
			logRH.Error("Retrieval failed: ", "err", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "retrieval unavailable")
			return
		}

		bundle := search.ContextBundle{
			Results:        results,
			Classification: classification,
			Context:        search.BuildContext(results),
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(bundle))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}
