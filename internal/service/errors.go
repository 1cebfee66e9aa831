package service

import "errors"

var (
	// ErrInvalidInput indicates an empty or invariant-violating record window
	ErrInvalidInput = errors.New("invalid record window")

	// ErrDuplicateRule indicates a rule with the same ID already exists
	ErrDuplicateRule = errors.New("rule ID already exists")
	// ErrInvalidRule indicates a rule with out-of-range or missing fields
	ErrInvalidRule = errors.New("invalid intervention rule")
	// ErrRuleNotFound indicates the referenced rule does not exist
	ErrRuleNotFound = errors.New("intervention rule not found")

	// ErrChallengeActive indicates start was called while a challenge is running
	ErrChallengeActive = errors.New("challenge already active")
	// ErrChallengeFinished indicates a check-in after the challenge completed
	ErrChallengeFinished = errors.New("challenge already finished")
	// ErrChallengeNotActive indicates a check-in or abandon without an active challenge
	ErrChallengeNotActive = errors.New("no active challenge")
)
