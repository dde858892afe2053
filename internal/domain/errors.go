package domain

import "fmt"

// ValidationError covers configuration-shape problems: missing derived
// ability keys, unknown tactic keys, multipliers outside published bounds.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ContractError covers identity-integrity violations: duplicate pids,
// shared pids across teams, non-canonical team_ids. Always fatal.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string { return e.Msg }

func NewContractError(format string, args ...interface{}) error {
	return &ContractError{Msg: fmt.Sprintf(format, args...)}
}

// AdapterError covers shape problems found while normalizing a
// RawGameResult into a GameResultV2. Always fatal, never silently fixed.
type AdapterError struct {
	Msg string
}

func (e *AdapterError) Error() string { return e.Msg }

func NewAdapterError(format string, args ...interface{}) error {
	return &AdapterError{Msg: fmt.Sprintf(format, args...)}
}

// IngestError signals a season_id mismatch that triggers a rollover; it is
// not surfaced to the caller as a failure, but callers may inspect it via
// errors.As to log the rollover.
type IngestError struct {
	Msg string
}

func (e *IngestError) Error() string { return e.Msg }

func NewIngestError(format string, args ...interface{}) error {
	return &IngestError{Msg: fmt.Sprintf(format, args...)}
}
