package models

// Request is the template view of a parsed request.
type Request struct {
	Headers         map[string][]string `json:"headers"`
	Query           map[string][]string `json:"query,omitempty"`
	Cookies         map[string]string   `json:"cookies,omitempty"`
	Method          string              `json:"method"`
	Target          string              `json:"target"`
	Protocol        string              `json:"protocol"`
	URL             string              `json:"url,omitempty"`
	RawURL          string              `json:"rawUrl,omitempty"`
	Referrer        string              `json:"referrer,omitempty"`
	ContentType     string              `json:"contentType,omitempty"`
	ContentEncoding string              `json:"contentEncoding,omitempty"`
	UserAgent       string              `json:"userAgent,omitempty"`
	UserHostName    string              `json:"userHostName,omitempty"`
	UserHostAddress string              `json:"userHostAddress,omitempty"`
	RemoteAddr      string              `json:"remoteAddr,omitempty"`
	TraceIdentifier string              `json:"traceIdentifier"`
	Body            string              `json:"body,omitempty"`
	AcceptTypes     []string            `json:"acceptTypes,omitempty"`
	UserLanguages   []string            `json:"userLanguages,omitempty"`
	ContentLength   int64               `json:"contentLength"`
	Chunked         bool                `json:"chunked"`
	KeepAlive       bool                `json:"keepAlive"`
	IsLocal         bool                `json:"isLocal"`
	IsSecure        bool                `json:"isSecure"`
	IsWebSocket     bool                `json:"isWebSocket"`
}
