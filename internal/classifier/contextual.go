package classifier

import "strings"

// The specialized classifiers below wrap Classify, injecting the operation
// context and promoting domain-specific substrings to more precise codes
// than the generic rule table would pick.

// ClassifyOperation routes err to the classifier specialized for the
// operation recorded in opCtx. Failure sites that already know their
// domain call the wrapper directly; the retry orchestrator only sees an
// opaque context map and dispatches here.
func ClassifyOperation(err error, opCtx map[string]string) Classification {
	switch opCtx["operation"] {
	case "cashout_send", "wallet":
		return ClassifyWalletError(err, opCtx)
	case "escrow":
		return ClassifyEscrowError(err, opCtx)
	case "deposit":
		return ClassifyDepositError(err, opCtx)
	case "notification":
		return ClassifyNotificationError(err, opCtx)
	case "admin":
		return ClassifyAdminError(err, opCtx)
	}
	return Classify(err, opCtx)
}

// ClassifyWalletError classifies a failure raised inside a wallet mutation.
// Any deadlock or lock contention in this context becomes a wallet-scoped
// code so operators can alert on ledger lock health separately from
// general database noise.
func ClassifyWalletError(err error, opCtx map[string]string) Classification {
	opCtx = withOperation(opCtx, "wallet")
	c := Classify(err, opCtx)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "deadlock") {
			return build(CodeWalletDeadlock)
		}
		if c.Code == CodeDBContention || c.Code == CodeDatabaseError {
			return build(CodeDBContention)
		}
	}
	return c
}

// ClassifyEscrowError classifies failures from escrow fund segregation.
func ClassifyEscrowError(err error, opCtx map[string]string) Classification {
	return Classify(err, withOperation(opCtx, "escrow"))
}

// ClassifyDepositError classifies failures from deposit confirmation.
// Parse failures on provider payloads are metadata errors regardless of
// what the message text looks like.
func ClassifyDepositError(err error, opCtx map[string]string) Classification {
	opCtx = withOperation(opCtx, "deposit")
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "unmarshal") || strings.Contains(msg, "parse") || strings.Contains(msg, "missing field") {
			return build(CodeMetadataParse)
		}
	}
	return Classify(err, opCtx)
}

// ClassifyNotificationError classifies notification dispatch failures.
// These are log-only: delivery failures never propagate into ledger paths.
func ClassifyNotificationError(err error, opCtx map[string]string) Classification {
	return Classify(err, withOperation(opCtx, "notification"))
}

// ClassifyAdminError classifies failures on admin-gated operations. An
// authorization failure here is a security violation, never retryable.
func ClassifyAdminError(err error, opCtx map[string]string) Classification {
	opCtx = withOperation(opCtx, "admin")
	c := Classify(err, opCtx)
	if c.Code == CodeAuthError {
		return build(CodeSecurityViolation)
	}
	return c
}

func withOperation(opCtx map[string]string, op string) map[string]string {
	out := make(map[string]string, len(opCtx)+1)
	for k, v := range opCtx {
		out[k] = v
	}
	if _, ok := out["operation"]; !ok {
		out["operation"] = op
	}
	return out
}
