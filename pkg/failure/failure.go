// Package failure classifies errors from credential resolution and
// completion calls into a small set of kinds, each mapped to fixed
// user-facing guidance.
package failure

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/germanamz/mealplanner/pkg/modeladapter"
)

// Kind enumerates the failure categories shown to the user.
type Kind int

const (
	Unknown Kind = iota
	MissingCredential
	Connectivity
	Credential
	RateLimit
)

func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case Connectivity:
		return "connectivity"
	case Credential:
		return "credential"
	case RateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// Error pins a Kind to an underlying error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// MissingCredentialError reports that no API key could be resolved.
type MissingCredentialError struct {
	EnvVar string // Variable the key is expected in.
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s is not set", e.EnvVar)
}

// New pins kind to err.
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Wrap classifies err and pins the result, so later callers need not inspect
// it again. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		return err
	}

	return &Error{Kind: Classify(err), Err: err}
}

// Classify returns the Kind of err. Typed causes are checked first, in the
// order connectivity, credential, rate limit; the lower-cased message is
// consulted in the same order only when no typed cause matches.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}

	var mce *MissingCredentialError
	if errors.As(err, &mce) {
		return MissingCredential
	}

	if isConnectivity(err) {
		return Connectivity
	}

	var se *modeladapter.StatusError
	if errors.As(err, &se) {
		if se.Unauthorized() {
			return Credential
		}
		if se.StatusCode == http.StatusTooManyRequests {
			return RateLimit
		}
	}

	var rle *modeladapter.RateLimitError
	if errors.As(err, &rle) {
		return RateLimit
	}

	return classifyText(strings.ToLower(err.Error()))
}

func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}

	var ue *url.Error
	return errors.As(err, &ue)
}

var (
	connectivityWords = []string{"network", "connection", "timeout", "timed out"}
	credentialWords   = []string{"api_key", "api key", "unauthorized", "permission"}
	rateLimitWords    = []string{"rate limit", "rate_limit", "quota", "too many requests"}
)

func classifyText(msg string) Kind {
	switch {
	case containsAny(msg, connectivityWords):
		return Connectivity
	case containsAny(msg, credentialWords):
		return Credential
	case containsAny(msg, rateLimitWords):
		return RateLimit
	default:
		return Unknown
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Report is the guidance rendered for a failure.
type Report struct {
	Kind        Kind
	Title       string
	Detail      string
	Remediation []string
}

// Describe builds the Report for err.
func Describe(err error) Report {
	kind := Classify(err)

	switch kind {
	case MissingCredential:
		envVar := "OPENAI_API_KEY"
		var mce *MissingCredentialError
		if errors.As(err, &mce) && mce.EnvVar != "" {
			envVar = mce.EnvVar
		}
		return Report{
			Kind:   kind,
			Title:  "🔑 API key not found!",
			Detail: fmt.Sprintf("Please set your %s environment variable to use this app.", envVar),
			Remediation: []string{
				fmt.Sprintf("export %s='your-api-key-here'", envVar),
				fmt.Sprintf("or add %s=your-api-key-here to a .env file", envVar),
			},
		}

	case Connectivity:
		return Report{
			Kind:   kind,
			Title:  "🌐 Network Error: Unable to connect to the completion service",
			Detail: "Please check your internet connection and try again.",
			Remediation: []string{
				"A stable internet connection",
				"No proxy or firewall blocking the API host",
			},
		}

	case Credential:
		return Report{
			Kind:   kind,
			Title:  "🔑 API Key Error: Please check your API key",
			Detail: "The service rejected the configured key.",
			Remediation: []string{
				"A valid API key set as environment variable",
				"A key that belongs to the configured provider",
			},
		}

	case RateLimit:
		detail := "Please wait a moment and try again, or check your billing."
		var rle *modeladapter.RateLimitError
		if errors.As(err, &rle) && rle.RetryAfter > 0 {
			detail = fmt.Sprintf("Please wait %s and try again, or check your billing.", rle.RetryAfter.Round(time.Second))
		}
		return Report{
			Kind:   kind,
			Title:  "⏱️ Rate Limit: You've exceeded your API usage limit",
			Detail: detail,
			Remediation: []string{
				"Sufficient API credits in your account",
			},
		}

	default:
		msg := "unknown error"
		if err != nil {
			msg = err.Error()
		}
		return Report{
			Kind:   kind,
			Title:  "❌ Something went wrong: " + msg,
			Detail: "💡 Need help? Make sure you have:",
			Remediation: []string{
				"A valid API key set as environment variable",
				"Sufficient API credits in your account",
				"A stable internet connection",
			},
		}
	}
}
