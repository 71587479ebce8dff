package responsehandler

import (
	"context"
	"net/http"

	"github.com/oxyno-zeta/http-listener/pkg/http-listener/config"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/log"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models/converter"
)

type handler struct {
	ctx            context.Context //nolint:containedctx // Handler lives for one exchange
	req            *request.Request
	res            http.ResponseWriter
	cfgManager     config.Manager
	headAnswerMode bool
}

func (h *handler) GetRequest() *request.Request {
	return h.req
}

func (h *handler) Echo(body string) {
	// Get configuration
	cfg := h.cfgManager.GetConfig()

	// Get helpers content
	helpersTpl, err := loadAllHelpersContent(cfg.Templates.Helpers)
	// Check error
	if err != nil {
		h.InternalServerError(err)

		return
	}

	// Echo is data, not markup: keep the raw values
	reqData := converter.ConvertRequest(h.req, body)

	// Manage headers
	headers, err := h.manageHeaders(
		helpersTpl,
		cfg.Templates.Echo.Headers,
		&models.HeaderData{Request: reqData, Status: http.StatusOK},
	)
	// Check if error exists
	if err != nil {
		h.InternalServerError(err)

		return
	}

	// Load main template content
	tpl, err := loadLocalFileContent(cfg.Templates.Echo.Path)
	// Check error
	if err != nil {
		h.InternalServerError(err)

		return
	}

	// Execute main template
	bodyBuf, err := executeTemplate(helpersTpl+"\n"+tpl, &models.EchoData{Request: reqData})
	// Check error
	if err != nil {
		h.InternalServerError(err)

		return
	}

	// Send
	err = h.send(bodyBuf, headers, http.StatusOK)
	// Check error
	if err != nil {
		// Headers are gone at this point, only log
		h.getLogger().Error(err)
	}
}

func (h *handler) getLogger() log.Logger {
	logger := log.GetLoggerFromContext(h.ctx)
	if logger == nil {
		return log.NewLogger()
	}

	return logger
}
