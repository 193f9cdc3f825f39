package models

// Validation statuses. Every rule always reports one of these; the checklist
// length never varies with draft contents.
const (
	ValidationPass          = "pass"
	ValidationFail          = "fail"
	ValidationWarn          = "warn"
	ValidationNotApplicable = "not_applicable"
)

// ValidationItem is the result of one compliance rule evaluation.
type ValidationItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Actor is the capability token passed into role-gated operations.
// IsOwner is the only role distinction the core makes: owners may override
// compliance failures and force-publish.
type Actor struct {
	UserID  int64 `json:"userId"`
	IsOwner bool  `json:"isOwner"`
}
