package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/secmon-lab/toolhub/pkg/utils/safe"
)

// Multipart field names of the image-resize form
const (
	imageFormField  = "image"
	widthFormField  = "width"
	heightFormField = "height"

	// multipartMemory is the part of a multipart body kept in memory; the rest
	// spills to temporary files
	multipartMemory = 8 << 20
)

type toolErrorResponse struct {
	Kind    model.ToolErrorKind   `json:"kind"`
	Message string                `json:"message"`
	Fields  model.FieldViolations `json:"fields,omitempty"`
}

type toolResultResponse struct {
	Success bool               `json:"success"`
	Data    model.ToolOutput   `json:"data,omitempty"`
	Error   *toolErrorResponse `json:"error,omitempty"`
}

func (s *Server) jsonToolHandler(kind types.ToolKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(http.MaxBytesReader(w, r.Body, s.maxUploadBytes))
		if err != nil {
			logging.From(r.Context()).Debug("malformed request body", "kind", kind, "error", err)
			writeToolResult(r, w, bodyViolation("must be a JSON object"))
			return
		}

		result := s.uc.Tool.Invoke(r.Context(), kind, &model.RawInput{Fields: fields})
		writeToolResult(r, w, result)
	}
}

func (s *Server) imageResizeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		logging.From(r.Context()).Debug("malformed multipart body", "error", err)
		writeToolResult(r, w, bodyViolation("must be multipart/form-data"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.From(r.Context()).Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	raw := &model.RawInput{Fields: map[string]any{}}
	for _, name := range []string{widthFormField, heightFormField} {
		if v := r.FormValue(name); v != "" {
			raw.Fields[name] = v
		}
	}

	file, _, err := r.FormFile(imageFormField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// reported by the validator
	case err != nil:
		writeToolResult(r, w, bodyViolation("must be multipart/form-data"))
		return
	default:
		defer safe.Close(r.Context(), file)
		data, err := io.ReadAll(file)
		if err != nil {
			logging.From(r.Context()).Debug("failed to read uploaded image", "error", err)
			writeToolResult(r, w, model.NewToolValidationFailure(model.FieldViolations{
				{Field: imageFormField, Message: "could not be read"},
			}))
			return
		}
		raw.Image = data
	}

	result := s.uc.Tool.Invoke(r.Context(), types.ToolKindImageResize, raw)
	writeToolResult(r, w, result)
}

// decodeFields reads a single JSON object. An empty body decodes to an empty
// object so that missing fields are reported per field.
func decodeFields(body io.Reader) (map[string]any, error) {
	fields := map[string]any{}
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, goerr.Wrap(err, "failed to decode request body")
	}
	if fields == nil {
		// literal null
		return nil, goerr.New("request body is null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, goerr.New("unexpected data after JSON object")
	}
	return fields, nil
}

func bodyViolation(message string) *model.ToolResult {
	return model.NewToolValidationFailure(model.FieldViolations{
		{Field: "body", Message: message},
	})
}

func writeToolResult(r *http.Request, w http.ResponseWriter, result *model.ToolResult) {
	if !result.Success {
		status := http.StatusInternalServerError
		if result.Error.Kind == model.ToolErrorValidation {
			status = http.StatusBadRequest
		}
		writeJSON(r, w, status, toolResultResponse{
			Error: &toolErrorResponse{
				Kind:    result.Error.Kind,
				Message: result.Error.Message,
				Fields:  result.Error.Fields,
			},
		})
		return
	}

	if img, ok := result.Data.(*model.ResizedImage); ok {
		w.Header().Set("Content-Type", img.MimeType)
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, img.Data)
		return
	}

	writeJSON(r, w, http.StatusOK, toolResultResponse{
		Success: true,
		Data:    result.Data,
	})
}
