package responsehandler

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"text/template"

	"emperror.dev/errors"
	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
)

var newLineMatcherRegex = regexp.MustCompile(`\r?\n`)

func (*handler) manageHeaders(helpersContent string, headersTpl map[string]string, hData interface{}) (map[string]string, error) {
	// Store result
	res := map[string]string{}

	// Loop over all headers asked
	for k, htpl := range headersTpl {
		// Concat helpers to header template
		tpl := helpersContent + "\n" + htpl
		// Execute template
		buf, err := executeTemplate(tpl, hData)
		// Check error
		if err != nil {
			return nil, err
		}
		// Remove all new lines
		str := newLineMatcherRegex.ReplaceAllString(buf.String(), "")
		// Save data only if the header isn't empty
		if str != "" {
			res[k] = str
		}
	}

	return res, nil
}

// send will send the response.
func (h *handler) send(bodyBuf io.WriterTo, headers map[string]string, status int) error {
	// Loop over headers
	for k, v := range headers {
		h.res.Header().Set(k, v)
	}

	// Set status code
	h.res.WriteHeader(status)

	// Check if we aren't in head answer
	if !h.headAnswerMode {
		// Write to response
		_, err := bodyBuf.WriteTo(h.res)
		// Check if error exists
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func loadAllHelpersContent(pathList []string) (string, error) {
	// Initialize template content
	tplContent := ""

	// Loop over local path
	for _, item := range pathList {
		// Load template content
		tpl, err := loadLocalFileContent(item)
		// Check error
		if err != nil {
			return "", err
		}
		// Concat
		tplContent = tplContent + "\n" + tpl
	}

	return tplContent, nil
}

func loadLocalFileContent(path string) (string, error) {
	// Read file from file path
	by, err := os.ReadFile(path)
	// Check if error exists
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(by), nil
}

func executeTemplate(tplString string, data interface{}) (*bytes.Buffer, error) {
	// Load template from string
	tmpl, err := template.
		New("template-string-loaded").
		Funcs(sprig.TxtFuncMap()).
		Funcs(listenerFuncMap()).
		Parse(tplString)
	// Check if error exists
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Generate template in buffer
	buf := &bytes.Buffer{}

	err = tmpl.Execute(buf, data)
	// Check if error exists
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return buf, nil
}

func listenerFuncMap() template.FuncMap {
	return template.FuncMap{
		// Human readable size, negative sizes are unknown
		"humanSize": func(size int64) string {
			if size < 0 {
				return "unknown"
			}

			return humanize.Bytes(uint64(size))
		},
	}
}
