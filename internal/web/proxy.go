// Package web is the client-facing HTTP surface of the web app: the proxy
// routes that relay requests to the backend, and the view endpoints that
// serve the reconciled community state.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/upstream"
)

const (
	msgAuthRequired   = "Authentication required"
	msgInternalError  = "Internal server error"
	userIDPlaceholder = "{userId}"
)

var errNoUserID = errors.New("token carries no user id")

// QueryParam is an allowlisted query parameter. An empty Default means the
// parameter is only forwarded when the caller sent it.
type QueryParam struct {
	Name    string
	Default string
}

// Route describes one proxy endpoint.
type Route struct {
	Name   string
	Method string
	// Path is the inbound gin path, relative to the /api group.
	Path string
	// Backend is the backend path. ":param" segments are filled from the
	// inbound path and {userId} from the bearer token.
	Backend string
	Auth    bool
	Query   []QueryParam
	// Fallback replaces an empty backend error message.
	Fallback string
	// SuccessStatus overrides the backend's 2xx status when set.
	SuccessStatus int
	// Passthrough relays error bodies verbatim instead of reducing them to a message.
	Passthrough bool
	// Required body fields, rejected with RequiredMessage when missing.
	Required        []string
	RequiredMessage string
}

// ProxyHandler forwards proxy routes to the backend.
type ProxyHandler struct {
	client *upstream.Client
}

func NewProxyHandler(client *upstream.Client) *ProxyHandler {
	return &ProxyHandler{client: client}
}

// Handle returns the gin handler for rt.
func (h *ProxyHandler) Handle(rt Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if rt.Auth && authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, msgAuthRequired)
			return
		}

		var body []byte
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			var err error
			if body, err = c.GetRawData(); err != nil {
				h.fail(c, rt, fmt.Errorf("failed to read request body: %w", err))
				return
			}
		}

		if len(rt.Required) > 0 {
			ok, err := hasFields(body, rt.Required)
			if err != nil {
				h.fail(c, rt, err)
				return
			}
			if !ok {
				abortWithError(c, http.StatusBadRequest, rt.RequiredMessage)
				return
			}
		}

		path, err := backendPath(rt.Backend, c, authHeader)
		if err != nil {
			h.fail(c, rt, err)
			return
		}

		header := http.Header{}
		header.Set("Content-Type", "application/json")
		if authHeader != "" {
			header.Set("Authorization", authHeader)
		}
		if id := c.GetString(ContextRequestIDKey); id != "" {
			header.Set(HeaderRequestID, id)
		}

		resp, err := h.client.Forward(c.Request.Context(), upstream.ForwardRequest{
			Method: rt.Method,
			Path:   path,
			Query:  forwardQuery(rt.Query, c.Request.URL.Query()),
			Header: header,
			Body:   body,
		})
		if err != nil {
			h.fail(c, rt, err)
			return
		}
		h.respond(c, rt, resp)
	}
}

func (h *ProxyHandler) respond(c *gin.Context, rt Route, resp *upstream.ForwardResponse) {
	if resp.Status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	if !json.Valid(resp.Body) {
		h.fail(c, rt, fmt.Errorf("%w: backend answered %d with a non-JSON body", upstream.ErrTransport, resp.Status))
		return
	}

	ok := resp.Status >= 200 && resp.Status < 300
	switch {
	case ok:
		status := resp.Status
		if rt.SuccessStatus != 0 {
			status = rt.SuccessStatus
		}
		c.Data(status, "application/json; charset=utf-8", resp.Body)
	case rt.Passthrough:
		c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
	default:
		var data struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body, &data)
		if data.Message == "" {
			data.Message = rt.Fallback
		}
		c.JSON(resp.Status, gin.H{"message": data.Message})
	}
}

// fail collapses every transport, parse and local failure into one opaque 500.
func (h *ProxyHandler) fail(c *gin.Context, rt Route, err error) {
	log.Printf("ERROR: proxy %s (request %s): %v", rt.Name, c.GetString(ContextRequestIDKey), err)
	abortWithError(c, http.StatusInternalServerError, msgInternalError)
}

func hasFields(body []byte, fields []string) (bool, error) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return false, fmt.Errorf("invalid request body: %w", err)
	}
	for _, f := range fields {
		v, ok := data[f]
		if !ok || v == nil {
			return false, nil
		}
		if s, isString := v.(string); isString && s == "" {
			return false, nil
		}
	}
	return true, nil
}

func backendPath(template string, c *gin.Context, authHeader string) (string, error) {
	segments := strings.Split(template, "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			segments[i] = url.PathEscape(c.Param(seg[1:]))
		case seg == userIDPlaceholder:
			claims, err := session.Decode(session.BearerToken(authHeader))
			if err != nil {
				return "", err
			}
			id := claims.Identity()
			if id == "" {
				return "", errNoUserID
			}
			segments[i] = url.PathEscape(id)
		}
	}
	return strings.Join(segments, "/"), nil
}

func forwardQuery(allowed []QueryParam, in url.Values) url.Values {
	if len(allowed) == 0 {
		return nil
	}
	out := url.Values{}
	for _, p := range allowed {
		v := in.Get(p.Name)
		if v == "" {
			v = p.Default
		}
		if v != "" {
			out.Set(p.Name, v)
		}
	}
	return out
}

// abortWithError writes the {"message": ...} error body used by the backend.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}
