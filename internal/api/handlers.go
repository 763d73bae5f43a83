package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"unicode/utf8"

	"github.com/alevsk/k8s-converter/internal/converter"
	"github.com/alevsk/k8s-converter/internal/logger"
)

// convertRaw converts a plain-text YAML body to JSON
func (s *Server) convertRaw(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !utf8.Valid(body) {
		s.writeError(w, http.StatusBadRequest, "encoding error: body must be UTF-8 encoded")
		return
	}

	resource, err := converter.Convert(string(body))
	if err != nil {
		s.writeConversionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, conversionResponse{
		JSONContent: resource,
		Message:     "YAML converted successfully",
	})
}

// convertFile converts a single uploaded YAML file to JSON
func (s *Server) convertFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	resource, err := convertUpload(file)
	if err != nil {
		s.writeConversionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, conversionResponse{
		JSONContent: resource,
		Message:     fmt.Sprintf("File '%s' converted successfully", header.Filename),
	})
}

// convertBatch converts multiple uploaded YAML files to JSON. Every file is
// attempted regardless of prior failures and the endpoint always answers
// with a success envelope carrying the per-file outcomes.
func (s *Server) convertBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		s.writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	resp := batchResponse{Results: make([]batchEntry, 0, len(uploads))}
	for _, header := range uploads {
		entry := batchEntry{Filename: header.Filename}

		resource, err := openAndConvert(header)
		if err != nil {
			logger.Error().Err(err).Msgf("failed to convert file %s", header.Filename)
			entry.Status = statusError
			entry.Error = err.Error()
			resp.Failed++
		} else {
			entry.Status = statusSuccess
			entry.JSONContent = resource
			resp.Successful++
		}

		resp.Results = append(resp.Results, entry)
	}

	resp.Message = fmt.Sprintf("Processed %d files: %d successful, %d failed",
		len(uploads), resp.Successful, resp.Failed)
	s.writeJSON(w, http.StatusOK, resp)
}

// openAndConvert opens one multipart file header and runs it through the
// conversion pipeline.
func openAndConvert(header *multipart.FileHeader) (map[string]interface{}, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", converter.ErrIO, err)
	}
	defer file.Close()
	return convertUpload(file)
}

// convertUpload reads uploaded bytes and converts them, classifying
// non-UTF-8 content as an encoding error.
func convertUpload(file multipart.File) (map[string]interface{}, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", converter.ErrIO, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: file must be UTF-8 encoded", converter.ErrEncoding)
	}
	return converter.Convert(string(content))
}

// writeConversionError maps a pipeline error to a client error response.
// Classified converter errors become 400s with the error text as detail;
// anything else is a defect and maps to a generic 500.
func (s *Server) writeConversionError(w http.ResponseWriter, err error) {
	if converter.IsConverterError(err) {
		logger.Error().Err(err).Msg("conversion failed")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error().Err(err).Msg("unexpected conversion error")
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
