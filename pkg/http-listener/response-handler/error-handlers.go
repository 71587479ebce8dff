package responsehandler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models/converter"
)

func (h *handler) ValidationError(err *request.ValidationError) {
	// Rejected requests are the client's fault
	h.getLogger().WithError(err).Warn("request rejected")

	// Call generic template handler
	h.handleGenericErrorTemplate(err, err.StatusCode())
}

func (h *handler) handleGenericErrorTemplate(err error, statusCode int) {
	// Get configuration
	cfg := h.cfgManager.GetConfig()

	// Get helpers content
	helpersTpl, err2 := loadAllHelpersContent(cfg.Templates.Helpers)
	// Check error
	if err2 != nil {
		h.InternalServerError(err2)

		return
	}

	// Get template from general configuration
	tplContent, err2 := loadLocalFileContent(cfg.Templates.Error.Path)
	// Check if error exists
	if err2 != nil {
		h.InternalServerError(err2)

		return
	}

	// Execute template
	err2 = h.templateExecution(helpersTpl, tplContent, err, statusCode)
	// Check error
	if err2 != nil {
		h.InternalServerError(err2)
	}
}

func (h *handler) InternalServerError(err error) {
	// Get config
	cfg := h.cfgManager.GetConfig()
	// Get logger
	logger := h.getLogger()

	// Log error
	logger.Error(err)

	// Get helpers content
	helpersTpl, err2 := loadAllHelpersContent(cfg.Templates.Helpers)
	// Check if error exists
	if err2 == nil {
		// Get template from general configuration
		var tplContent string

		tplContent, err2 = loadLocalFileContent(cfg.Templates.Error.Path)
		// Check if error exists
		if err2 == nil {
			// Execute template
			err2 = h.templateExecution(helpersTpl, tplContent, err, http.StatusInternalServerError)
		}
	}

	// Check error
	if err2 != nil {
		// New error
		logger.Error(err2)
		// Template error
		res := fmt.Sprintf(`
<!DOCTYPE html>
<html>
  <body>
	<h1>Internal Server Error</h1>
	<p>%s</p>
  </body>
</html>
`, html.EscapeString(err2.Error()))

		// Set the header
		h.res.Header().Set("Content-Type", "text/html; charset=utf-8")
		// Set status code
		h.res.WriteHeader(http.StatusInternalServerError)
		// Write the buffer to the http.ResponseWriter
		if !h.headAnswerMode {
			_, _ = h.res.Write([]byte(res))
		}
	}
}

func (h *handler) templateExecution(helpersTpl, tplContent string, err error, status int) error {
	// Get configuration
	cfg := h.cfgManager.GetConfig()

	// Error pages may be html: strip client markup first
	reqData := converter.SanitizeRequest(converter.ConvertRequest(h.req, ""))

	// Manage headers
	headers, err2 := h.manageHeaders(
		helpersTpl,
		cfg.Templates.Error.Headers,
		&models.HeaderData{Request: reqData, Status: status},
	)
	// Check if error exists
	if err2 != nil {
		return err2
	}

	// Create data
	data := &models.ErrorData{
		Request:    reqData,
		Error:      err,
		Status:     status,
		StatusText: http.StatusText(status),
	}

	// Execute main template
	bodyBuf, err2 := executeTemplate(helpersTpl+"\n"+tplContent, data)
	// Check error
	if err2 != nil {
		return err2
	}

	// Send
	return h.send(bodyBuf, headers, status)
}
