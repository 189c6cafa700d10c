package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys populated by the access filter for downstream handlers.
const (
	ctxSubjectKey   = "subject"
	ctxScopeKey     = "scope"
	ctxRequestIDKey = "requestId"
)

const requestIDHeader = "X-Request-Id"

type accessPolicy int

const (
	policyAllow accessPolicy = iota
	policyAuthenticate
)

// accessRule pairs a request matcher with the policy applied when it matches.
// An empty method matches any method; an empty prefix matches any path.
type accessRule struct {
	method string
	prefix string
	policy accessPolicy
	scope  string // when set, a valid token must also carry this scope
}

// accessRules is evaluated first-match, top to bottom. Order matters: the
// first six entries mirror the documented precedence table; the health rule
// is appended after them. Unmatched requests require authentication.
var accessRules = []accessRule{
	{method: http.MethodOptions, policy: policyAllow},
	{prefix: "/authenticate", policy: policyAllow},
	{prefix: "/api/courses", policy: policyAuthenticate},
	{prefix: "/swagger-ui", policy: policyAuthenticate},
	{prefix: "/v3/api-docs", policy: policyAllow},
	{prefix: "/h2-console", policy: policyAllow},
	{method: http.MethodGet, prefix: "/health", policy: policyAllow},
}

func (r accessRule) matches(method, path string) bool {
	if r.method != "" && r.method != method {
		return false
	}
	if r.prefix != "" && !strings.HasPrefix(path, r.prefix) {
		return false
	}
	return true
}

// accessFilter classifies every request against the rule table and enforces
// the matched policy before any handler runs.
func (h *Handler) accessFilter(c *gin.Context) {
	rule := accessRule{policy: policyAuthenticate} // default deny
	for _, r := range accessRules {
		if r.matches(c.Request.Method, c.Request.URL.Path) {
			rule = r
			break
		}
	}

	if rule.policy == policyAllow {
		c.Next()
		return
	}
	h.authorize(c, rule)
}

// authorize accepts either a bearer token or, as an alternate credential
// path, HTTP Basic against the credential store.
func (h *Handler) authorize(c *gin.Context, rule accessRule) {
	if username, password, ok := c.Request.BasicAuth(); ok {
		p, err := h.services.ValidateCredentials(username, password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid credentials",
			})
			return
		}
		c.Set(ctxSubjectKey, p.Username)
		c.Set(ctxScopeKey, strings.Join(p.Authorities, " "))
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	if rule.scope != "" && !hasScope(claims.Scope, rule.scope) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient scope",
		})
		return
	}

	c.Set(ctxSubjectKey, claims.Subject)
	c.Set(ctxScopeKey, claims.Scope)
	c.Next()
}

// hasScope reports whether want appears in the space-joined scope claim.
func hasScope(scopes, want string) bool {
	for _, s := range strings.Fields(scopes) {
		if s == want {
			return true
		}
	}
	return false
}

// requestID tags each request with an id, honoring one supplied by the client.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// requestLog emits one structured line per completed request.
func (h *Handler) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"request_id", c.GetString(ctxRequestIDKey),
	)
}

// frameOptions relaxes framing to same-origin responses only.
func frameOptions(c *gin.Context) {
	c.Header("X-Frame-Options", "SAMEORIGIN")
	c.Next()
}
