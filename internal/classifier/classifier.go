// Package classifier maps raised failures to a failure type, stable error
// code, and retry policy. Classification is a pure function over the error
// value and an optional free-form operation context: provider error strings
// are not under our control, so the first line of matching is an ordered
// regex rule table, with typed-error heuristics as fallback.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
)

// ErrorCode is a stable identifier for a failure mode. Operators tune
// retry behaviour per code through the policy table without touching
// control flow.
type ErrorCode string

const (
	CodeNetworkError    ErrorCode = "NETWORK_ERROR"
	CodeAPITimeout      ErrorCode = "API_TIMEOUT"
	CodeRateLimit       ErrorCode = "RATE_LIMIT_ERROR"
	CodeProviderError   ErrorCode = "PROVIDER_ERROR"
	CodeDatabaseError   ErrorCode = "DATABASE_ERROR"
	CodeDBContention    ErrorCode = "DB_CONTENTION"
	CodeWalletDeadlock  ErrorCode = "WALLET_DEADLOCK_ERROR"
	CodeMetadataParse   ErrorCode = "METADATA_PARSE_ERROR"
	CodeUnknown         ErrorCode = "UNKNOWN_ERROR"
	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	CodeInvalidAddress  ErrorCode = "INVALID_ADDRESS"
	CodeInvalidAmount   ErrorCode = "INVALID_AMOUNT"
	CodeSanctionsBlock  ErrorCode = "SANCTIONS_BLOCKED"
	CodeAuthError       ErrorCode = "AUTH_ERROR"
	CodeSecurityViolation ErrorCode = "SECURITY_VIOLATION"
)

// Classification is the outcome of classifying one failure.
type Classification struct {
	Type      domain.FailureType
	Code      ErrorCode
	Retryable bool
	// Delay is the backoff before the first retry. Later attempts look up
	// DelayForAttempt with their own attempt index.
	Delay time.Duration
}

// RetryPolicy is the static per-code retry configuration. Backoff is an
// ordered list, not a formula: attempt N sleeps Backoff[N], clamped to the
// last entry when retries outrun the list.
type RetryPolicy struct {
	MaxRetries int
	Backoff    []time.Duration
	Retryable  bool
}

type rule struct {
	re   *regexp.Regexp
	code ErrorCode
}

// Technical rules are matched before user rules: substrings overlap (a
// provider may say "timeout while checking balance") and technical wins
// ties so a transient fault is never terminal-failed as a user error.
var technicalRules = []rule{
	{regexp.MustCompile(`(?i)deadlock`), CodeDatabaseError},
	{regexp.MustCompile(`(?i)lock (wait )?timeout|could not obtain lock|lock_timeout`), CodeDBContention},
	{regexp.MustCompile(`(?i)connection (refused|reset|closed)|no such host|broken pipe|network is unreachable|EOF`), CodeNetworkError},
	{regexp.MustCompile(`(?i)timed? ?out|deadline exceeded`), CodeAPITimeout},
	{regexp.MustCompile(`(?i)rate limit|too many requests|429`), CodeRateLimit},
	{regexp.MustCompile(`(?i)bad gateway|service unavailable|gateway timeout|internal server error|50[234]`), CodeProviderError},
	{regexp.MustCompile(`(?i)\bsql\b|pgx|postgres|database`), CodeDatabaseError},
}

var userRules = []rule{
	{regexp.MustCompile(`(?i)insufficient (funds|balance)|not enough (funds|balance)`), CodeInsufficientFunds},
	{regexp.MustCompile(`(?i)(invalid|malformed|bad) (destination )?address|address (checksum|format)`), CodeInvalidAddress},
	{regexp.MustCompile(`(?i)sanction|compliance (block|hold)|prohibited jurisdiction|account (frozen|restricted)`), CodeSanctionsBlock},
	{regexp.MustCompile(`(?i)invalid amount|amount too (small|large)|below minimum|dust`), CodeInvalidAmount},
	{regexp.MustCompile(`(?i)unauthori[sz]ed|forbidden|invalid credentials|permission denied`), CodeAuthError},
}

var policies = map[ErrorCode]RetryPolicy{
	CodeNetworkError:   {MaxRetries: 5, Backoff: delays(30, 60, 120, 300, 600), Retryable: true},
	CodeAPITimeout:     {MaxRetries: 4, Backoff: delays(60, 120, 300, 600), Retryable: true},
	CodeRateLimit:      {MaxRetries: 6, Backoff: delays(60, 300, 900, 1800, 3600), Retryable: true},
	CodeProviderError:  {MaxRetries: 3, Backoff: delays(120, 600, 1800), Retryable: true},
	CodeDatabaseError:  {MaxRetries: 3, Backoff: delays(30, 60, 300), Retryable: true},
	CodeDBContention:   {MaxRetries: 5, Backoff: delays(5, 10, 30, 60), Retryable: true},
	CodeWalletDeadlock: {MaxRetries: 4, Backoff: delays(5, 15, 30, 60), Retryable: true},
	CodeMetadataParse:  {MaxRetries: 0, Backoff: nil, Retryable: false},
	CodeUnknown:        {MaxRetries: 1, Backoff: delays(600), Retryable: true},

	CodeInsufficientFunds: {MaxRetries: 0, Retryable: false},
	CodeInvalidAddress:    {MaxRetries: 0, Retryable: false},
	CodeInvalidAmount:     {MaxRetries: 0, Retryable: false},
	CodeSanctionsBlock:    {MaxRetries: 0, Retryable: false},
	CodeAuthError:         {MaxRetries: 0, Retryable: false},
	CodeSecurityViolation: {MaxRetries: 0, Retryable: false},
}

// technicalCodes marks codes whose failure type is TECHNICAL.
var technicalCodes = map[ErrorCode]bool{
	CodeNetworkError:   true,
	CodeAPITimeout:     true,
	CodeRateLimit:      true,
	CodeProviderError:  true,
	CodeDatabaseError:  true,
	CodeDBContention:   true,
	CodeWalletDeadlock: true,
	CodeMetadataParse:  true,
	CodeUnknown:        true,
}

func delays(seconds ...int) []time.Duration {
	out := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		out[i] = time.Duration(s) * time.Second
	}
	return out
}

// Classify maps err plus an optional context map to a classification.
// Context keys (e.g. "operation", "entity_type") only refine the result
// and are never required.
func Classify(err error, opCtx map[string]string) Classification {
	if err == nil {
		return build(CodeUnknown)
	}

	msg := err.Error()
	for _, r := range technicalRules {
		if r.re.MatchString(msg) {
			return build(r.code)
		}
	}
	for _, r := range userRules {
		if r.re.MatchString(msg) {
			return build(r.code)
		}
	}

	// No message rule matched: fall back to error-type heuristics.
	if code, ok := classifyByType(err); ok {
		return build(code)
	}
	return build(CodeUnknown)
}

func classifyByType(err error) (ErrorCode, bool) {
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CodeAPITimeout, true
		}
		return CodeNetworkError, true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeAPITimeout, true
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return CodeMetadataParse, true
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return CodeInvalidAmount, true
	}
	return "", false
}

func build(code ErrorCode) Classification {
	p := policies[code]
	ft := domain.FailureTypeUser
	if technicalCodes[code] {
		ft = domain.FailureTypeTechnical
	}
	var delay time.Duration
	if len(p.Backoff) > 0 {
		delay = p.Backoff[0]
	}
	return Classification{Type: ft, Code: code, Retryable: p.Retryable, Delay: delay}
}

// PolicyFor returns the static retry policy for code. Unknown codes get
// the UNKNOWN_ERROR policy.
func PolicyFor(code ErrorCode) RetryPolicy {
	if p, ok := policies[code]; ok {
		return p
	}
	return policies[CodeUnknown]
}

// DelayForAttempt returns the backoff before retry number attempt
// (0-based), clamped to the last configured delay.
func DelayForAttempt(code ErrorCode, attempt int) time.Duration {
	p := PolicyFor(code)
	if len(p.Backoff) == 0 {
		return 0
	}
	if attempt >= len(p.Backoff) {
		attempt = len(p.Backoff) - 1
	}
	return p.Backoff[attempt]
}

// ShouldRetry reports whether another attempt is allowed after retryCount
// prior failures with this code.
func ShouldRetry(code ErrorCode, retryCount int) bool {
	p := PolicyFor(code)
	return p.Retryable && retryCount < p.MaxRetries
}
