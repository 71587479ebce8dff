package converter

import (
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/request"
	"github.com/oxyno-zeta/http-listener/pkg/http-listener/response-handler/models"
	"golang.org/x/text/encoding/htmlindex"
)

// Policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// ConvertRequest builds the template view of a request.
// Derived fields are read through the request cache so they are computed once.
func ConvertRequest(req *request.Request, body string) *models.Request {
	res := &models.Request{
		Headers:         map[string][]string(req.Headers().HTTPHeader()),
		Method:          req.Method(),
		Target:          req.Target(),
		RawURL:          req.RawURL(),
		ContentType:     req.ContentType(),
		UserAgent:       req.UserAgent(),
		UserHostName:    req.UserHostName(),
		UserHostAddress: req.UserHostAddress(),
		TraceIdentifier: req.RequestTraceIdentifier().String(),
		Body:            body,
		AcceptTypes:     req.AcceptTypes(),
		UserLanguages:   req.UserLanguages(),
		ContentLength:   req.ContentLength(),
		Chunked:         req.Chunked(),
		KeepAlive:       req.KeepAlive(),
		IsLocal:         req.IsLocal(),
		IsSecure:        req.IsSecureConnection(),
		IsWebSocket:     req.IsWebSocketRequest(),
	}

	// Protocol is only known once the request line is parsed
	if res.Method != "" {
		res.Protocol = "HTTP/" + req.ProtocolVersion().String()
	}

	if u := req.URL(); u != nil {
		res.URL = u.String()
	}

	if ref := req.URLReferrer(); ref != nil {
		res.Referrer = ref.String()
	}

	if addr := req.RemoteEndPoint(); addr != nil {
		res.RemoteAddr = addr.String()
	}

	if enc := req.ContentEncoding(); enc != nil {
		// Unknown encodings are left out
		if name, err := htmlindex.Name(enc); err == nil {
			res.ContentEncoding = name
		}
	}

	if q := req.QueryString(); len(q) != 0 {
		res.Query = map[string][]string(q)
	}

	if cookies := req.Cookies(); len(cookies) != 0 {
		res.Cookies = cookiesToMap(cookies)
	}

	return res
}

// SanitizeRequest returns a copy of the view where every client supplied string
// has been stripped of markup. Used before rendering html bodies.
func SanitizeRequest(in *models.Request) *models.Request {
	if in == nil {
		return nil
	}

	res := *in

	res.Method = sanitizeString(in.Method)
	res.Target = sanitizeString(in.Target)
	res.URL = sanitizeString(in.URL)
	res.RawURL = sanitizeString(in.RawURL)
	res.Referrer = sanitizeString(in.Referrer)
	res.ContentType = sanitizeString(in.ContentType)
	res.UserAgent = sanitizeString(in.UserAgent)
	res.UserHostName = sanitizeString(in.UserHostName)
	res.Body = sanitizeString(in.Body)
	res.Headers = sanitizeMultiMap(in.Headers)
	res.Query = sanitizeMultiMap(in.Query)
	res.AcceptTypes = sanitizeList(in.AcceptTypes)
	res.UserLanguages = sanitizeList(in.UserLanguages)

	if in.Cookies != nil {
		res.Cookies = make(map[string]string, len(in.Cookies))
		for k, v := range in.Cookies {
			res.Cookies[sanitizeString(k)] = sanitizeString(v)
		}
	}

	return &res
}

func cookiesToMap(cookies []*http.Cookie) map[string]string {
	res := make(map[string]string, len(cookies))
	// First one wins, like net/http
	for _, c := range cookies {
		if _, ok := res[c.Name]; !ok {
			res[c.Name] = c.Value
		}
	}

	return res
}

func sanitizeMultiMap(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}

	res := make(map[string][]string, len(in))
	for k, v := range in {
		res[sanitizeString(k)] = sanitizeList(v)
	}

	return res
}

func sanitizeList(in []string) []string {
	if in == nil {
		return nil
	}

	res := make([]string, len(in))
	for i, s := range in {
		res[i] = sanitizeString(s)
	}

	return res
}

func sanitizeString(s string) string {
	return strictPolicy.Sanitize(s)
}
